package tui

import (
	"github.com/PizzaHomicide/sedai/internal/analysis"
	"github.com/PizzaHomicide/sedai/internal/config"
	"github.com/PizzaHomicide/sedai/internal/service"
	"github.com/PizzaHomicide/sedai/internal/ui/tui/models"
	tea "github.com/charmbracelet/bubbletea"
)

func Run(cfg *config.Config, svc *service.GridService, analyzer analysis.Analyzer, exporter models.Exporter) error {
	p := tea.NewProgram(models.NewAppModel(cfg, svc, analyzer, exporter), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
