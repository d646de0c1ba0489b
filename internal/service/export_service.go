package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/bp4sp4/korhrd-landing/internal/repository"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("엑셀 파일 생성에 실패했습니다")

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response。
// 无记录时仍生成只含表头的文件。
type ExportService interface {
	// ExportInquiries 导出全部상담 신청为 Excel，返回内容与建议文件名
	ExportInquiries(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

const exportSheet = "상담 신청"

var exportHeaders = []string{"번호", "신청일시", "이름", "연락처", "희망과정", "최종학력", "특이사항"}

var exportWidths = []float64{8, 20, 12, 16, 22, 16, 40}

func (s *exportService) ExportInquiries(ctx context.Context) (*bytes.Buffer, string, error) {
	inquiries, err := s.repo.Inquiry.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询상담 신청失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrExportGenerateFail, err)
	}
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	_ = f.DeleteSheet("Sheet1")

	for i, w := range exportWidths {
		col := colName(i)
		_ = f.SetColWidth(exportSheet, col, col, w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 表头
	for i, h := range exportHeaders {
		_ = f.SetCellValue(exportSheet, cell(colName(i), 1), h)
	}
	_ = f.SetCellStyle(exportSheet, "A1", cell(colName(len(exportHeaders)-1), 1), headerStyle)
	_ = f.SetPanes(exportSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	// 数据行：与后台列表同序（最新在前）
	loc := s.now().Location()
	for i, inq := range inquiries {
		row := i + 2
		values := []interface{}{
			inq.ID,
			inq.CreatedAt.In(loc).Format("2006-01-02 15:04"),
			inq.Name,
			inq.Contact,
			inq.DesiredCourse,
			inq.Education,
			inq.SpecialNotes,
		}
		if err := f.SetSheetRow(exportSheet, cell("A", row), &values); err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrExportGenerateFail, err)
		}
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("상담신청_%s.xlsx", s.now().Format("20060102"))
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
