package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cktlab/drawdeck/internal/artifact"
	"github.com/cktlab/drawdeck/internal/history"
	"github.com/cktlab/drawdeck/internal/style"
)

// ArtifactsResponse lists the working set.
type ArtifactsResponse struct {
	SchematicOK bool        `json:"schematic_ok"`
	Symbols     []SymbolRef `json:"symbols"`
}

// SymbolRef names one symbol artifact and its canonical path.
type SymbolRef struct {
	Lib  string `json:"lib"`
	Cell string `json:"cell"`
	Path string `json:"path"`
}

// IngestResponse reports the outcome of loading a description or an
// archive.
type IngestResponse struct {
	SchematicOK bool        `json:"schematic_ok"`
	Symbols     []SymbolRef `json:"symbols"`
	Warning     string      `json:"warning,omitempty"`
}

// HistoryResponse carries a stream's state after a query or step.
type HistoryResponse struct {
	Entity string       `json:"entity"`
	Info   history.Info `json:"info"`
}

// StyleResponse is the live style state.
type StyleResponse struct {
	Name   string        `json:"name"`
	Preset *style.Preset `json:"preset"`
	Drift  DriftResponse `json:"drift"`
}

// DriftResponse mirrors style.Diff for the wire.
type DriftResponse struct {
	Changed        bool `json:"changed"`
	OnlyVisibility bool `json:"only_visibility"`
}

func toDrift(d style.Diff) DriftResponse {
	return DriftResponse{Changed: d.Changed, OnlyVisibility: d.OnlyVisibility}
}

func toSymbolRefs(keys []artifact.Key) []SymbolRef {
	refs := make([]SymbolRef, len(keys))
	for i, k := range keys {
		refs[i] = SymbolRef{Lib: k.Lib, Cell: k.Cell, Path: "symbols/" + k.Lib + "/" + k.Cell + ".drawio"}
	}
	return refs
}

// handleViewerContent serves artifact content to the embedded viewer.
func (s *Service) handleViewerContent(c *gin.Context) {
	path := c.Param("path")
	if path == "" {
		path = c.Param("entity")
	}
	content, err := s.engine.Resolve(path)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/xml", content)
}

// handleIngest loads a raw schematic description.
func (s *Service) handleIngest(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil || len(raw) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: codeValidation, Message: "empty request body"})
		return
	}
	report, err := s.engine.IngestFromDescription(c.Request.Context(), raw)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, IngestResponse{
		SchematicOK: report.SchematicOK,
		Symbols:     toSymbolRefs(report.SymbolKeys),
	})
}

func (s *Service) handleListArtifacts(c *gin.Context) {
	c.JSON(http.StatusOK, ArtifactsResponse{
		SchematicOK: s.engine.HasSchematic(),
		Symbols:     toSymbolRefs(s.engine.ListSymbols()),
	})
}

// handleCommit applies viewer-edited content: store put plus history
// push as one logical commit.
func (s *Service) handleCommit(c *gin.Context) {
	content, err := io.ReadAll(c.Request.Body)
	if err != nil || len(content) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: codeValidation, Message: "empty artifact content"})
		return
	}
	entity := c.Param("entity")
	if err := s.engine.CommitEdit(entity, content); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Service) handleUndo(c *gin.Context) {
	s.handleStep(c, s.engine.Undo)
}

func (s *Service) handleRedo(c *gin.Context) {
	s.handleStep(c, s.engine.Redo)
}

func (s *Service) handleStep(c *gin.Context, step func(string) ([]byte, history.Info, error)) {
	entity := c.Param("entity")
	_, info, err := step(entity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, HistoryResponse{Entity: entity, Info: info})
}

func (s *Service) handleHistoryInfo(c *gin.Context) {
	entity := c.Param("entity")
	info, err := s.engine.HistoryInfo(entity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, HistoryResponse{Entity: entity, Info: info})
}

func (s *Service) handleCurrentStyle(c *gin.Context) {
	name, preset := s.engine.CurrentStyle()
	c.JSON(http.StatusOK, StyleResponse{
		Name:   name,
		Preset: preset,
		Drift:  toDrift(s.engine.StyleDrift()),
	})
}

func (s *Service) handleStyleDrift(c *gin.Context) {
	c.JSON(http.StatusOK, toDrift(s.engine.StyleDrift()))
}

// handleStyleUpdate applies a live (uncommitted) style edit. The
// payload may be partial: unnamed fields inherit the built-in defaults,
// so an explicitly empty layer_order is rejected while an omitted one
// keeps the default order.
func (s *Service) handleStyleUpdate(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil || len(raw) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: codeValidation, Message: "empty style payload"})
		return
	}
	diff, err := s.engine.UpdateStyle(c.Request.Context(), raw)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDrift(diff))
}

func (s *Service) handleStyleFix(c *gin.Context) {
	s.engine.FixStyle()
	c.Status(http.StatusNoContent)
}

func (s *Service) handleStyleReset(c *gin.Context) {
	preset, err := s.engine.ResetStyle(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	name, _ := s.engine.CurrentStyle()
	c.JSON(http.StatusOK, StyleResponse{Name: name, Preset: preset, Drift: DriftResponse{}})
}

func (s *Service) handleStyleNames(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"presets": s.engine.StyleNames()})
}

// handleStyleUpload registers an uploaded preset; re-uploading under an
// existing name intentionally replaces it. Partial payloads merge onto
// the built-in defaults, same as style updates.
func (s *Service) handleStyleUpload(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil || len(raw) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: codeValidation, Message: "empty style payload"})
		return
	}
	name := c.Param("name")
	if _, err := s.engine.AddStyle(name, raw); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"name": name})
}

func (s *Service) handleStyleSelect(c *gin.Context) {
	name := c.Param("name")
	preset, diff, err := s.engine.SelectStyle(c.Request.Context(), name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, StyleResponse{Name: name, Preset: preset, Drift: toDrift(diff)})
}

// handleExport streams the project archive.
func (s *Service) handleExport(c *gin.Context) {
	archiveBytes, err := s.engine.ExportArchive()
	if err != nil {
		writeError(c, err)
		return
	}
	filename := fmt.Sprintf("drawdeck-%s.zip", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/zip", archiveBytes)
}

// handleImport restores a project from an uploaded archive. Accepts
// either a multipart "archive" file or the raw body.
func (s *Service) handleImport(c *gin.Context) {
	raw := readArchiveUpload(c)
	if len(raw) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: codeValidation, Message: "empty archive upload"})
		return
	}
	report, err := s.engine.IngestFromArchive(raw)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, IngestResponse{
		SchematicOK: report.SchematicOK,
		Symbols:     toSymbolRefs(report.SymbolKeys),
		Warning:     report.Warning,
	})
}

func readArchiveUpload(c *gin.Context) []byte {
	if file, err := c.FormFile("archive"); err == nil {
		f, err := file.Open()
		if err != nil {
			return nil
		}
		defer f.Close()
		raw, err := io.ReadAll(f)
		if err != nil {
			return nil
		}
		return raw
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil
	}
	return raw
}

func (s *Service) handleDemoList(c *gin.Context) {
	entries, err := s.demos.List()
	if err != nil {
		slog.Error("demo listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: codeInternal, Message: "failed to list demo sets"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"demos": entries})
}

// handleDemoLoad ingests a bundled demo set: its style first (when
// present) so the description renders under it.
func (s *Service) handleDemoLoad(c *gin.Context) {
	set, err := s.demos.Load(c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	if set.Style != nil {
		if _, err := s.engine.AddStyle(set.Name, set.Style); err != nil {
			writeError(c, err)
			return
		}
		if _, _, err := s.engine.SelectStyle(c.Request.Context(), set.Name); err != nil {
			writeError(c, err)
			return
		}
	}
	report, err := s.engine.IngestFromDescription(c.Request.Context(), set.Description)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, IngestResponse{
		SchematicOK: report.SchematicOK,
		Symbols:     toSymbolRefs(report.SymbolKeys),
	})
}
