package web

import (
	_ "embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates/index.html
var indexHTML string

// Styles offered in the style picker.
var Styles = []string{"modern", "minimal", "corporate", "playful", "elegant", "retro"}

type PageData struct {
	DefaultStyle string
	Styles       []string
	MaxImages    int
}

// NewPageData puts defaultStyle first in the picker, adding it if it is not a known style.
func NewPageData(defaultStyle string, maxImages int) PageData {
	styles := []string{defaultStyle}
	for _, style := range Styles {
		if style != defaultStyle {
			styles = append(styles, style)
		}
	}
	return PageData{DefaultStyle: defaultStyle, Styles: styles, MaxImages: maxImages}
}

func ParseTemplates() (*template.Template, error) {
	return template.New("index.html").Parse(indexHTML)
}

// RegisterRoutes serves the single-page UI at "/".
func RegisterRoutes(router *gin.Engine, data PageData) error {
	tmpl, err := ParseTemplates()
	if err != nil {
		return err
	}
	router.SetHTMLTemplate(tmpl)

	router.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", data)
	})
	return nil
}
