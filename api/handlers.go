package api

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	pdfPkg "pdftools/pdf"
)

type pagesForm struct {
	Pages string `form:"pages" binding:"required"`
}

type rotateForm struct {
	Pages    string `form:"pages" binding:"required"`
	Rotation string `form:"rotation"`
}

type combineForm struct {
	Rotate1 string `form:"rotate1"`
	Rotate2 string `form:"rotate2"`
}

// uploadError is an upload that could not be accepted, with the status to report.
type uploadError struct {
	status int
	msg    string
}

func (e *uploadError) Error() string {
	return e.msg
}

func HandleUpload(c *gin.Context, config *Config) {
	workDir, err := newWorkDir(config.TempDir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create temp directory"})
		return
	}

	path, header, err := saveUpload(c, config, workDir, "pdf")
	if err != nil {
		os.RemoveAll(workDir)
		respondUploadError(c, err)
		return
	}

	config.Logger.Debug().Str("path", path).Msg("Stored upload")

	c.JSON(http.StatusOK, gin.H{
		"id":       filepath.Base(workDir),
		"filename": header.Filename,
	})

	scheduleCleanup(workDir, config.CleanupDelay)
}

func HandleCombine(c *gin.Context, config *Config) {
	var form combineForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	handlePDFFiles(c, config, []string{"pdf1", "pdf2"}, func(inFiles []string) (string, error) {
		return config.Processor.CombineFiles(pdfPkg.CombineRequest{
			First:        inFiles[0],
			Second:       inFiles[1],
			RotateFirst:  pdfPkg.ParseRotation(form.Rotate1),
			RotateSecond: pdfPkg.ParseRotation(form.Rotate2),
		})
	})
}

func HandleReorder(c *gin.Context, config *Config) {
	var form pagesForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No pages specified"})
		return
	}

	handlePDFFiles(c, config, []string{"pdf"}, func(inFiles []string) (string, error) {
		return config.Processor.ReorderFile(inFiles[0], form.Pages)
	})
}

func HandleRotate(c *gin.Context, config *Config) {
	var form rotateForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No pages specified"})
		return
	}
	if strings.TrimSpace(form.Rotation) == "" {
		form.Rotation = DefaultRotation
	}

	handlePDFFiles(c, config, []string{"pdf"}, func(inFiles []string) (string, error) {
		return config.Processor.RotateFile(inFiles[0], form.Pages, pdfPkg.ParseRotation(form.Rotation))
	})
}

func HandleRemovePages(c *gin.Context, config *Config) {
	var form pagesForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No pages specified"})
		return
	}

	handlePDFFiles(c, config, []string{"pdf"}, func(inFiles []string) (string, error) {
		return config.Processor.RemovePagesFile(inFiles[0], form.Pages)
	})
}

func HandleInfo(c *gin.Context, config *Config) {
	workDir, err := newWorkDir(config.TempDir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create temp directory"})
		return
	}
	defer os.RemoveAll(workDir)

	inFile, _, err := saveUpload(c, config, workDir, "pdf")
	if err != nil {
		respondUploadError(c, err)
		return
	}

	info, err := config.Processor.InfoFile(inFile)
	if err != nil {
		respondOperationError(c, config, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// handlePDFFiles saves the uploaded form files into a fresh work directory,
// runs operation on them and sends the file it produced as a download.
// The work directory is removed after the response has been sent.
func handlePDFFiles(c *gin.Context, config *Config, fields []string, operation func([]string) (string, error)) {
	workDir, err := newWorkDir(config.TempDir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create temp directory"})
		return
	}

	inFiles := make([]string, 0, len(fields))
	for _, field := range fields {
		inFile, _, err := saveUpload(c, config, workDir, field)
		if err != nil {
			os.RemoveAll(workDir)
			respondUploadError(c, err)
			return
		}
		inFiles = append(inFiles, inFile)
	}

	outFile, err := operation(inFiles)
	if err != nil {
		os.RemoveAll(workDir)
		respondOperationError(c, config, err)
		return
	}

	// Verify output file exists before sending
	if _, err := os.Stat(outFile); os.IsNotExist(err) {
		os.RemoveAll(workDir)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "PDF operation did not produce output file"})
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sanitizeFilename(filepath.Base(outFile))))
	c.File(outFile)

	scheduleCleanup(workDir, config.CleanupDelay)
}

// saveUpload validates the form file field and stores it in workDir under
// its sanitised name. A name already taken in workDir gets a numeric prefix.
func saveUpload(c *gin.Context, config *Config, workDir, field string) (string, *multipart.FileHeader, error) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		return "", nil, &uploadError{status: http.StatusBadRequest, msg: fmt.Sprintf("No PDF file provided in field %q", field)}
	}
	defer file.Close()

	if err := validatePDFFile(file, header, config.MaxFileSize); err != nil {
		return "", nil, &uploadError{status: http.StatusBadRequest, msg: err.Error()}
	}

	name := sanitizeFilename(header.Filename)
	if !strings.HasSuffix(strings.ToLower(name), pdfPkg.PDFExtension) {
		name += pdfPkg.PDFExtension
	}
	filename := filepath.Join(workDir, name)
	for i := 2; fileExists(filename); i++ {
		filename = filepath.Join(workDir, fmt.Sprintf("%d_%s", i, name))
	}

	out, err := os.Create(filename)
	if err != nil {
		return "", nil, &uploadError{status: http.StatusInternalServerError, msg: "Failed to save file"}
	}
	defer out.Close()

	if _, err := out.ReadFrom(file); err != nil {
		os.Remove(filename)
		return "", nil, &uploadError{status: http.StatusInternalServerError, msg: "Failed to save file"}
	}

	return filename, header, nil
}

func respondUploadError(c *gin.Context, err error) {
	var upErr *uploadError
	if errors.As(err, &upErr) {
		c.JSON(upErr.status, gin.H{"error": upErr.msg})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// respondOperationError reports validation failures as bad requests and
// anything else as a server error.
func respondOperationError(c *gin.Context, config *Config, err error) {
	var valErr *pdfPkg.ValidationError
	if errors.As(err, &valErr) {
		// the client only knows the name it uploaded
		msg := valErr.Error()
		if valErr.Path != "" {
			msg = strings.ReplaceAll(msg, valErr.Path, filepath.Base(valErr.Path))
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	config.Logger.Error().Err(err).Str("path", c.FullPath()).Msg("PDF operation error")

	// Truncate long error messages but include key info
	errorMsg := "PDF operation failed"
	if errStr := err.Error(); errStr != "" {
		if len(errStr) > MaxErrorMessageLength {
			errorMsg = errStr[:MaxErrorMessageLength] + "..."
		} else {
			errorMsg = errStr
		}
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": errorMsg})
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// newWorkDir creates a unique directory for one request below tempDir
func newWorkDir(tempDir string) (string, error) {
	if err := os.MkdirAll(tempDir, DefaultFilePermissions); err != nil {
		return "", err
	}
	dir := filepath.Join(tempDir, uuid.New().String())
	if err := os.Mkdir(dir, DefaultFilePermissions); err != nil {
		return "", err
	}
	return dir, nil
}

// scheduleCleanup removes dir once the response has had time to be sent
func scheduleCleanup(dir string, delay time.Duration) {
	go func() {
		time.Sleep(delay)
		os.RemoveAll(dir)
	}()
}

// sanitizeFilename removes path traversal attempts and dangerous characters
func sanitizeFilename(filename string) string {
	// Remove directory separators and path traversal attempts
	filename = strings.ReplaceAll(filename, "..", "")
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.ReplaceAll(filename, "\\", "_")

	filename = filepath.Base(filename)
	filename = strings.TrimSpace(filename)

	if filename == "" || filename == "." {
		filename = "document.pdf"
	}

	return filename
}

// validatePDFFile checks the size limit and the PDF header of an upload
func validatePDFFile(file multipart.File, header *multipart.FileHeader, maxSize int64) error {
	if header.Size > maxSize {
		return fmt.Errorf("file size %d exceeds maximum allowed %d bytes", header.Size, maxSize)
	}

	// Read first 4 bytes to check PDF header
	buffer := make([]byte, 4)
	n, err := io.ReadFull(file, buffer)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return fmt.Errorf("failed to read file header: %v", err)
	}

	if n < 4 || string(buffer) != "%PDF" {
		return fmt.Errorf("invalid PDF file: header does not match")
	}

	// Seek back to beginning for subsequent reads
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to reset file position: %v", err)
	}

	return nil
}
