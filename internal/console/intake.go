package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bp4sp4/korhrd-landing/internal/admin"
	"github.com/bp4sp4/korhrd-landing/internal/intake"
	"github.com/bp4sp4/korhrd-landing/internal/model"
)

// RunIntake 逐项询问并提交一条상담 신청
// 本地校验失败时只重新询问失败的字段；写入失败不重试，直接返回
func RunIntake(ctx context.Context, form *intake.Form, term *Terminal) (*model.Inquiry, error) {
	term.Println(titleStyle.Render("상담 신청"))

	for _, field := range []string{
		intake.FieldName,
		intake.FieldContact,
		intake.FieldDesiredCourse,
		intake.FieldEducation,
		intake.FieldSpecialNotes,
		intake.FieldConsent,
	} {
		if err := askField(form, term, field); err != nil {
			return nil, err
		}
	}

	for {
		inq, err := form.Submit(ctx)
		var verr *intake.ValidationError
		switch {
		case err == nil:
			term.Notify(admin.LevelSuccess, form.Message())
			return inq, nil
		case errors.As(err, &verr):
			term.Notify(admin.LevelError, verr.Message)
			if err := askField(form, term, verr.Field); err != nil {
				return nil, err
			}
		default:
			term.Notify(admin.LevelError, intake.MsgSubmitFailed)
			return nil, err
		}
	}
}

func askField(form *intake.Form, term *Terminal, field string) error {
	switch field {
	case intake.FieldName:
		return askText(form, term, field, "이름: ")
	case intake.FieldContact:
		if err := askText(form, term, field, "연락처: "); err != nil {
			return err
		}
		if c := form.Draft().Contact; c != "" {
			term.Println(mutedStyle.Render("  → " + c))
		}
		return nil
	case intake.FieldDesiredCourse:
		course, err := choose(term, "희망과정", intake.Courses, false)
		if err != nil {
			return err
		}
		if err := form.UpdateField(field, course); err != nil {
			return err
		}
		if course == intake.OtherOption {
			return askField(form, term, intake.FieldOtherCourse)
		}
		return nil
	case intake.FieldOtherCourse:
		return askText(form, term, field, "과정명: ")
	case intake.FieldEducation:
		edu, err := choose(term, "최종학력", intake.EducationLevels, true)
		if err != nil {
			return err
		}
		return form.UpdateField(field, edu)
	case intake.FieldSpecialNotes:
		return askText(form, term, field, "특이사항 (선택): ")
	case intake.FieldConsent:
		// 输入结束必须向上返回，否则未同意时会反复询问
		answer, err := term.ReadLine("개인정보 수집 및 이용에 동의하십니까? [y/N] ")
		if err != nil {
			return err
		}
		form.SetConsent(isYes(answer))
		return nil
	default:
		return fmt.Errorf("%w: %q", intake.ErrUnknownField, field)
	}
}

func askText(form *intake.Form, term *Terminal, field, prompt string) error {
	v, err := term.ReadLine(prompt)
	if err != nil {
		return err
	}
	return form.UpdateField(field, strings.TrimSpace(v))
}

// choose 打印编号列表，接受编号或选项原文；optional 时空输入返回 ""
func choose(term *Terminal, title string, options []string, optional bool) (string, error) {
	term.Println(headerStyle.Render(title))
	for i, opt := range options {
		term.Printf("  %d) %s\n", i+1, opt)
	}

	for {
		answer, err := term.ReadLine("선택: ")
		if err != nil {
			return "", err
		}
		answer = strings.TrimSpace(answer)
		if answer == "" && optional {
			return "", nil
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		for _, opt := range options {
			if opt == answer {
				return opt, nil
			}
		}
		term.Notify(admin.LevelError, fmt.Sprintf("1-%d 사이의 번호를 입력해주세요.", len(options)))
	}
}
