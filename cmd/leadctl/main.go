// leadctl 상담 신청运营终端：提交신청、登录管理后台审阅与删除记录。
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/bp4sp4/korhrd-landing/config"
	"github.com/bp4sp4/korhrd-landing/internal/admin"
	"github.com/bp4sp4/korhrd-landing/internal/client"
	"github.com/bp4sp4/korhrd-landing/internal/console"
	"github.com/bp4sp4/korhrd-landing/internal/intake"
	applogger "github.com/bp4sp4/korhrd-landing/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("LEADCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "leadctl",
		Short:         "상담 신청 운영 도구",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("server", "http://localhost:8080", "API 서버 주소 (LEADCTL_SERVER)")
	root.PersistentFlags().String("admin-path", "/admin", "관리자 페이지 경로 (LEADCTL_ADMIN_PATH)")
	root.PersistentFlags().String("log-level", "error", "진단 로그 레벨 (LEADCTL_LOG_LEVEL)")
	_ = v.BindPFlags(root.PersistentFlags())

	root.AddCommand(newSubmitCmd(v), newAdminCmd(v))
	return root
}

// ── submit ──

func newSubmitCmd(v *viper.Viper) *cobra.Command {
	var (
		draft intake.Draft
		other string
		agree bool
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "상담 신청 제출",
		Long: `상담 신청을 제출합니다.

--name 을 지정하면 플래그 값만으로 바로 제출하고,
지정하지 않으면 항목을 하나씩 물어봅니다.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(v)
			if err != nil {
				return err
			}
			defer logger.Sync()

			c, err := newClient(v, logger)
			if err != nil {
				return err
			}
			form := intake.NewForm(c, intake.WithLogger(logger))
			tty := console.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout())

			if !cmd.Flags().Changed("name") {
				_, err := console.RunIntake(cmd.Context(), form, tty)
				return err
			}

			fields := []struct{ name, value string }{
				{intake.FieldName, draft.Name},
				{intake.FieldContact, draft.Contact},
				{intake.FieldDesiredCourse, draft.DesiredCourse},
				{intake.FieldOtherCourse, other},
				{intake.FieldEducation, draft.Education},
				{intake.FieldSpecialNotes, draft.SpecialNotes},
			}
			for _, f := range fields {
				if err := form.UpdateField(f.name, f.value); err != nil {
					return err
				}
			}
			form.SetConsent(agree)

			inq, err := form.Submit(cmd.Context())
			if err != nil {
				tty.Notify(admin.LevelError, submitMessage(form, err))
				return err
			}
			tty.Notify(admin.LevelSuccess, form.Message())
			tty.Printf("번호: %d\n", inq.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&draft.Name, "name", "", "이름")
	f.StringVar(&draft.Contact, "contact", "", "연락처")
	f.StringVar(&draft.DesiredCourse, "course", "", "희망과정 ("+strings.Join(intake.Courses, ", ")+")")
	f.StringVar(&other, "other-course", "", "희망과정이 기타일 때 과정명")
	f.StringVar(&draft.Education, "education", "", "최종학력 ("+strings.Join(intake.EducationLevels, ", ")+")")
	f.StringVar(&draft.SpecialNotes, "notes", "", "특이사항")
	f.BoolVar(&agree, "agree", false, "개인정보 수집 및 이용 동의")
	return cmd
}

func submitMessage(form *intake.Form, err error) string {
	if msg := form.Message(); msg != "" {
		return msg
	}
	return err.Error()
}

// ── admin ──

func newAdminCmd(v *viper.Viper) *cobra.Command {
	var exportDir string

	cmd := &cobra.Command{
		Use:   "admin",
		Short: "관리자 콘솔",
		Long:  "관리자 계정으로 로그인하여 상담 신청 내역을 조회, 선택, 삭제, 내보내기 합니다.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(v)
			if err != nil {
				return err
			}
			defer logger.Sync()

			c, err := newClient(v, logger)
			if err != nil {
				return err
			}

			var opts []console.TerminalOption
			if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
				opts = append(opts, console.WithSecretReader(func() (string, error) {
					b, err := term.ReadPassword(fd)
					return string(b), err
				}))
			}
			tty := console.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout(), opts...)

			ws := admin.NewWorkspace()
			table := admin.NewTable(ws, c, tty, logger)
			gate := admin.NewGate(ws, c, table, tty, logger)
			return console.NewShell(tty, ws, gate, table, c, console.WithExportDir(exportDir)).Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&exportDir, "export-dir", ".", "엑셀 파일 저장 위치")
	return cmd
}

// ── 公共 ──

func newLogger(v *viper.Viper) (*zap.Logger, error) {
	return applogger.NewLogger(&config.LogConfig{Level: v.GetString("log-level"), Format: "console"})
}

func newClient(v *viper.Viper, logger *zap.Logger) (*client.Client, error) {
	return client.New(v.GetString("server"),
		client.WithAdminPath(v.GetString("admin-path")),
		client.WithLogger(logger),
	)
}
