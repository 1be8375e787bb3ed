package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/google/uuid"

	"skudiff/adapters/excel"
	"skudiff/app"
	"skudiff/domain/compare"
	"skudiff/internal/config"
	"skudiff/internal/errors"
	"skudiff/internal/profile"
	"skudiff/internal/report"
)

//go:embed templates/*
var embeddedFiles embed.FS

// storedReport keeps one comparison outcome around for download. Entries
// are transient: they live only for the process lifetime and the backing
// text file sits in the upload directory.
type storedReport struct {
	textPath string
	result   *compare.Result
}

// Server is the web front-end: upload form, result dashboard, report
// downloads.
type Server struct {
	router  *gin.Engine
	service *app.CompareService
	cfg     *config.Config

	reportsMu sync.Mutex
	reports   map[string]*storedReport
}

// NewServer creates the web server
func NewServer(cfg *config.Config, service *app.CompareService) (*Server, error) {
	gin.SetMode(cfg.Server.GinMode)

	funcMap := template.FuncMap{
		"mul": func(a, b float64) float64 { return a * b },
		"add": func(a, b int) int { return a + b },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse templates")
	}

	s := &Server{
		router:  gin.Default(),
		service: service,
		cfg:     cfg,
		reports: make(map[string]*storedReport),
	}
	s.router.SetHTMLTemplate(templates)
	s.router.MaxMultipartMemory = cfg.Uploads.MaxFileSizeMB << 20
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.POST("/compare", s.handleCompare)
	s.router.GET("/download/:id", s.handleDownload)
	s.router.GET("/download/:id/xlsx", s.handleDownloadXLSX)
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	log.Printf("[Server] Starting skudiff web UI on %s", addr)
	return s.router.Run(addr)
}

// Router exposes the gin engine for tests
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"DefaultDirection":     s.cfg.Compare.Direction,
		"DefaultCaseSensitive": s.cfg.Compare.CaseSensitive,
	})
}

// handleCompare runs one full comparison from an uploaded pair of files.
// Uploaded files are removed on every exit path.
func (s *Server) handleCompare(c *gin.Context) {
	log.Printf("[handleCompare] Starting comparison request")

	opts, err := s.parseOptions(c)
	if err != nil {
		s.renderError(c, err)
		return
	}

	firstPath, firstName, err := s.saveUpload(c, "first_file")
	if err != nil {
		s.renderError(c, err)
		return
	}
	defer os.Remove(firstPath)

	secondPath, secondName, err := s.saveUpload(c, "second_file")
	if err != nil {
		s.renderError(c, err)
		return
	}
	defer os.Remove(secondPath)

	firstColumn := strings.TrimSpace(c.PostForm("first_column"))
	secondColumn := strings.TrimSpace(c.PostForm("second_column"))
	if firstColumn == "" || secondColumn == "" {
		s.renderError(c, errors.InvalidInput("both column names are required"))
		return
	}

	firstTable, err := excel.NewDataReader(firstPath).ReadTable()
	if err != nil {
		s.renderError(c, err)
		return
	}
	firstTable.Name = firstName

	secondTable, err := excel.NewDataReader(secondPath).ReadTable()
	if err != nil {
		s.renderError(c, err)
		return
	}
	secondTable.Name = secondName

	result, err := s.service.CompareTables(firstTable, firstColumn, secondTable, secondColumn, opts)
	if err != nil {
		s.renderError(c, err)
		return
	}

	firstProfile, err := profile.Column(firstTable, firstColumn)
	if err != nil {
		s.renderError(c, err)
		return
	}
	secondProfile, err := profile.Column(secondTable, secondColumn)
	if err != nil {
		s.renderError(c, err)
		return
	}

	reportID, err := s.storeReport(result)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "result.html", gin.H{
		"Result":        result,
		"Codes":         result.Codes(),
		"Description":   result.Describe(),
		"NoMissing":     result.Count == 0,
		"NoMissingText": report.NoMissingMarker,
		"FirstProfile":  firstProfile,
		"SecondProfile": secondProfile,
		"Preview":       renderMarkdownPreview(result),
		"ReportID":      reportID,
	})
}

func (s *Server) handleDownload(c *gin.Context) {
	stored, ok := s.lookupReport(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	c.FileAttachment(stored.textPath, "comparison_report.txt")
}

func (s *Server) handleDownloadXLSX(c *gin.Context) {
	stored, ok := s.lookupReport(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}

	var buf bytes.Buffer
	if err := excel.WriteWorkbook(&buf, report.Header(), report.Rows(stored.result)); err != nil {
		log.Printf("[handleDownloadXLSX] FAILED - %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build workbook"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="comparison_report.xlsx"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

// parseOptions reads the comparison flags from the form
func (s *Server) parseOptions(c *gin.Context) (compare.Options, error) {
	opts := compare.Options{
		CaseSensitive: s.cfg.Compare.CaseSensitive,
		Direction:     compare.Direction(s.cfg.Compare.Direction),
	}

	if v := c.PostForm("direction"); v != "" {
		direction, err := compare.ParseDirection(v)
		if err != nil {
			return opts, err
		}
		opts.Direction = direction
	}
	if v := c.PostForm("case_sensitive"); v != "" {
		opts.CaseSensitive = compare.ParseCaseFlag(v, opts.CaseSensitive)
	}
	return opts, nil
}

// saveUpload validates and persists one uploaded file to the upload
// directory under a collision-free name. The caller removes the file.
func (s *Server) saveUpload(c *gin.Context, field string) (path, filename string, err error) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		return "", "", errors.InvalidInput(fmt.Sprintf("missing uploaded file %q", field))
	}
	defer file.Close()

	maxSize := s.cfg.Uploads.MaxFileSizeMB << 20
	if header.Size > maxSize {
		return "", "", errors.InvalidInput(fmt.Sprintf("file %s (%.1f MB) exceeds the %dMB limit",
			header.Filename, float64(header.Size)/(1024*1024), s.cfg.Uploads.MaxFileSizeMB))
	}

	if !hasValidExtension(header.Filename) {
		return "", "", errors.InvalidInput("only Excel (.xlsx, .xls) and CSV (.csv) files are allowed")
	}

	dst := filepath.Join(s.cfg.Uploads.Dir,
		fmt.Sprintf("upload-%s%s", uuid.NewString(), strings.ToLower(filepath.Ext(header.Filename))))
	if err := c.SaveUploadedFile(header, dst); err != nil {
		return "", "", errors.Wrap(err, "failed to save uploaded file")
	}

	log.Printf("[saveUpload] Saved %s (%d bytes) as %s", header.Filename, header.Size, dst)
	return dst, header.Filename, nil
}

func hasValidExtension(filename string) bool {
	for _, ext := range []string{".xlsx", ".xls", ".csv"} {
		if strings.HasSuffix(strings.ToLower(filename), ext) {
			return true
		}
	}
	return false
}

// storeReport writes the transient report file and registers it for
// download under a fresh identifier.
func (s *Server) storeReport(result *compare.Result) (string, error) {
	id := uuid.NewString()
	path := filepath.Join(s.cfg.Uploads.Dir, fmt.Sprintf("report-%s.txt", id))
	if err := report.WriteTextFile(path, result); err != nil {
		return "", err
	}

	s.reportsMu.Lock()
	s.reports[id] = &storedReport{textPath: path, result: result}
	s.reportsMu.Unlock()
	return id, nil
}

func (s *Server) lookupReport(id string) (*storedReport, bool) {
	s.reportsMu.Lock()
	defer s.reportsMu.Unlock()
	stored, ok := s.reports[id]
	return stored, ok
}

// renderMarkdownPreview converts the markdown report into HTML for the
// dashboard preview pane.
func renderMarkdownPreview(result *compare.Result) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	rendered := markdown.ToHTML([]byte(report.Markdown(result)), p, renderer)
	return template.HTML(rendered)
}

// renderError maps application error codes onto HTTP statuses and renders
// the error page.
func (s *Server) renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeColumnNotFound:
		status = http.StatusUnprocessableEntity
	case errors.CodeFileUnreadable, errors.CodeInvalidDirection, errors.CodeInvalidInput:
		status = http.StatusBadRequest
	}

	log.Printf("[Server] Request failed (%s): %v", errors.GetCode(err), err)
	c.HTML(status, "error.html", gin.H{"Error": err.Error()})
}
