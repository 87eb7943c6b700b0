package usecase

import (
	"context"

	"newsletter-hub/internal/newsletter/normalize"
	"newsletter-hub/internal/newsletter/title"
	"newsletter-hub/internal/task"
	"newsletter-hub/internal/task/repository"
	"newsletter-hub/pkg/gcalendar"
	"newsletter-hub/pkg/gemini"
	"newsletter-hub/pkg/jpdate"
	pkgLog "newsletter-hub/pkg/log"
)

// CalendarClient is the slice of the calendar API this usecase needs.
type CalendarClient interface {
	CreateAllDayEvent(ctx context.Context, req gcalendar.AllDayEventRequest) (*gcalendar.Event, error)
}

type implUseCase struct {
	l      pkgLog.Logger
	llm    gemini.IGemini // optional; used only when the caller sends OCR text without a payload
	titles *title.Engine
	norm   *normalize.Normalizer
	dates  *jpdate.Resolver
	tasks  *task.Generator

	// Optional side-effect targets; nil disables them.
	board repository.BoardRepository
	cal   CalendarClient
}

// New creates a newsletter extraction UseCase instance.
func New(
	l pkgLog.Logger,
	llm gemini.IGemini,
	titles *title.Engine,
	norm *normalize.Normalizer,
	dates *jpdate.Resolver,
	tasks *task.Generator,
	board repository.BoardRepository,
	cal CalendarClient,
) *implUseCase {
	return &implUseCase{
		l:      l,
		llm:    llm,
		titles: titles,
		norm:   norm,
		dates:  dates,
		tasks:  tasks,
		board:  board,
		cal:    cal,
	}
}
