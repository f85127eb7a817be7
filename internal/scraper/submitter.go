package scraper

import (
	"context"
	"log"

	"go-hh-agent/internal/browser"
	"go-hh-agent/internal/config"
	"go-hh-agent/internal/models"
)

// Stage is a step of the application flow.
type Stage string

const (
	StageOpen    Stage = "open"
	StageRespond Stage = "respond"
	StageFill    Stage = "fill"
	StageConfirm Stage = "confirm"
)

// Outcome reports how far an application got.
// Done is true when the listing needs no further attention from the caller:
// the letter was submitted, or the page was left open in a state a human can
// finish (letter filled but not sent, or nothing fillable found).
type Outcome struct {
	Done      bool
	Stage     Stage
	Filled    bool
	Submitted bool
	Err       error
}

// Submitter opens a listing, activates the respond control, fills the cover
// letter and, only when asked to, confirms.
type Submitter struct {
	site   *Site
	cfg    *config.Config
	driver *Driver
	logger *log.Logger
}

func NewSubmitter(site *Site, cfg *config.Config, driver *Driver, logger *log.Logger) *Submitter {
	if logger == nil {
		logger = log.Default()
	}
	return &Submitter{site: site, cfg: cfg, driver: driver, logger: logger}
}

func (s *Submitter) Apply(ctx context.Context, page browser.Page, l models.Listing, letter string, submit bool) Outcome {
	if err := s.driver.Open(ctx, page, l); err != nil {
		return Outcome{Stage: StageOpen, Err: err}
	}

	if _, err := s.site.RespondLocators.Click(page, s.cfg.ClickTimeout); err != nil {
		s.logger.Printf("⚠️ Не нашёл кнопку «Откликнуться»: %s", l.URL)
		return Outcome{Stage: StageRespond, Err: err}
	}
	s.driver.Settle(page)

	if !s.fill(page, letter) {
		s.logger.Printf("⚠️ Не удалось вставить письмо. Оставил страницу открытой: %s", l.URL)
		return Outcome{
			Done:  true,
			Stage: StageFill,
			Err:   browser.Degrade("fill letter", browser.ReasonNoMatch, nil),
		}
	}

	if !submit {
		s.logger.Printf("✅ Письмо вставлено (НЕ отправлено). Проверьте и отправьте вручную: %s", l.URL)
		return Outcome{Done: true, Stage: StageFill, Filled: true}
	}

	if _, err := s.site.ConfirmLocators.Click(page, s.cfg.ConfirmTimeout); err != nil {
		s.logger.Printf("⚠️ Не нашёл финальную кнопку отправки. Проверьте вручную: %s", l.URL)
		return Outcome{Stage: StageConfirm, Filled: true, Err: err}
	}

	s.logger.Printf("✅ Отклик отправлен: %s", l.URL)
	return Outcome{Done: true, Stage: StageConfirm, Filled: true, Submitted: true}
}

// fill tries the letter inputs, then the generic editable fallback.
func (s *Submitter) fill(page browser.Page, letter string) bool {
	if _, err := s.site.LetterLocators.Fill(page, letter, s.cfg.FillTimeout); err == nil {
		return true
	}
	_, err := s.site.EditableFallback.Fill(page, letter, s.cfg.FallbackFillTimeout)
	return err == nil
}
