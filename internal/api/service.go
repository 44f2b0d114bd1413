// Package api exposes the document engine to the presentation layer
// and to the embedded viewer: artifact content by virtual path, edit
// commits, undo/redo, style management, project export/import, and the
// bundled demo sets.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/cktlab/drawdeck/internal/demo"
	"github.com/cktlab/drawdeck/internal/engine"
)

// Service wires the engine and demo library into gin routes.
type Service struct {
	engine *engine.Engine
	demos  *demo.Library
}

// NewService creates the API service.
func NewService(eng *engine.Engine, demos *demo.Library) *Service {
	return &Service{engine: eng, demos: demos}
}

// RegisterRoutes mounts every route on the given engine. The viewer
// content route is a wildcard: the router strips whatever deployment
// prefix precedes the canonical suffix.
func (s *Service) RegisterRoutes(r *gin.Engine) {
	r.GET("/embedded/*path", s.handleViewerContent)

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/schematic", s.handleIngest)
		apiGroup.GET("/artifacts", s.handleListArtifacts)
		apiGroup.GET("/content/*entity", s.handleViewerContent)
		apiGroup.POST("/commit/*entity", s.handleCommit)
		apiGroup.POST("/undo/*entity", s.handleUndo)
		apiGroup.POST("/redo/*entity", s.handleRedo)
		apiGroup.GET("/history/*entity", s.handleHistoryInfo)

		styleGroup := apiGroup.Group("/style")
		{
			styleGroup.GET("", s.handleCurrentStyle)
			styleGroup.GET("/drift", s.handleStyleDrift)
			styleGroup.POST("/update", s.handleStyleUpdate)
			styleGroup.POST("/fix", s.handleStyleFix)
			styleGroup.POST("/reset", s.handleStyleReset)
			styleGroup.GET("/presets", s.handleStyleNames)
			styleGroup.PUT("/presets/:name", s.handleStyleUpload)
			styleGroup.POST("/presets/:name/select", s.handleStyleSelect)
		}

		apiGroup.GET("/project/export", s.handleExport)
		apiGroup.POST("/project/import", s.handleImport)

		apiGroup.GET("/demos", s.handleDemoList)
		apiGroup.POST("/demos/:name/load", s.handleDemoLoad)
	}
}
