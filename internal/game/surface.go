package game

import (
	"image"

	"github.com/PeterRapcsak/bailando/internal/platform"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// surface 把 overlay 的请求转给 ebiten 和系统窗口
type surface struct {
	title   string
	log     *zerolog.Logger
	pending bool // 窗口还没创建时记下来，Update 里再补
}

func (s *surface) MoveTo(p image.Point) {
	ebiten.SetWindowPosition(p.X, p.Y)
}

func (s *surface) SetTaskbarVisible(visible bool) {
	if err := platform.SetTaskbarVisible(s.title, visible); err != nil {
		s.pending = true
		return
	}
	s.pending = false
}

// flush 补上窗口创建前没能生效的任务栏状态
func (s *surface) flush(visible bool) {
	if !s.pending {
		return
	}
	if err := platform.SetTaskbarVisible(s.title, visible); err != nil {
		s.log.Debug().Err(err).Msg("任务栏状态暂时无法应用")
		return
	}
	s.pending = false
}
