// Package agent runs the interactive session: it interprets goals, drives
// searches, keeps the current listing set and dispatches user commands.
package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"go-hh-agent/internal/browser"
	"go-hh-agent/internal/config"
	"go-hh-agent/internal/dedup"
	"go-hh-agent/internal/intent"
	"go-hh-agent/internal/models"
	"go-hh-agent/internal/scraper"
	"go-hh-agent/utils"
)

var ErrExitRequested = errors.New("exit requested")

// Notifier is told about every application attempt that reached the page,
// the start of the session and command failures other than timeouts.
type Notifier interface {
	SendApplication(l models.Listing, out scraper.Outcome) error
	SendStatus(message string) error
	SendError(err error) error
}

const helpText = `Команды:
  help                  справка
  list                  показать вакансии на текущей странице
  open N                открыть вакансию N
  apply N               подготовить/отправить отклик на вакансию N
  next                  следующая страница поиска
  prev                  предыдущая страница поиска
  refresh               обновить страницу и пересобрать список

  submit on|off         авто-отправка (по умолчанию off)

  ai                    повторное обращение к "AI" (перестроить поиск и фильтры)
  ai top                показать топ N (N из последней AI-фразы, иначе 5)
  ai help               примеры AI-запросов

  exit                  выйти`

const aiExamples = `Примеры обращения к AI:
- Открой hh.ru и найди 5 вакансий Python backend в Москве, удалёнка, middle
- Открой hh.ru и найди 3 вакансии Django в СПб, junior, зарплата от 150к
- Открой hh.ru и найди 10 вакансий FastAPI по РФ, удалёнка, 3-6`

// Agent owns the session page and all mutable session state.
// It is driven from a single goroutine.
type Agent struct {
	cfg         *config.Config
	page        browser.Page
	interpreter *intent.Interpreter
	driver      *scraper.Driver
	collector   *scraper.Collector
	submitter   *scraper.Submitter
	notifier    Notifier
	shots       *utils.ScreenShotDebugger
	scanner     *bufio.Scanner
	out         io.Writer
	logger      *log.Logger

	spec     models.SearchSpec
	listings []models.Listing
	submit   bool
	lastWant *int
	applied  *dedup.Set
}

func New(cfg *config.Config, site *scraper.Site, page browser.Page, in io.Reader, out io.Writer, logger *log.Logger) *Agent {
	if logger == nil {
		logger = log.Default()
	}
	driver := scraper.NewDriver(site, cfg, logger)
	return &Agent{
		cfg:         cfg,
		page:        page,
		interpreter: intent.New(cfg),
		driver:      driver,
		collector:   scraper.NewCollector(site, cfg, logger),
		submitter:   scraper.NewSubmitter(site, cfg, driver, logger),
		shots:       utils.NewScreenShotDebugger(cfg.ScreenshotDir, logger),
		scanner:     bufio.NewScanner(in),
		out:         out,
		logger:      logger,
		submit:      cfg.Submit,
		listings:    []models.Listing{},
		applied:     dedup.NewSet(),
	}
}

// WithNotifier reports applications to n.
func (a *Agent) WithNotifier(n Notifier) *Agent {
	a.notifier = n
	return a
}

func (a *Agent) Spec() models.SearchSpec    { return a.spec }
func (a *Agent) Listings() []models.Listing { return a.listings }
func (a *Agent) Submit() bool               { return a.submit }

// Run asks for the first goal, lands on the site, runs the initial search
// and then serves commands until exit, end of input or ctx cancellation.
func (a *Agent) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "🚀 Агент HH (интерактивный режим).")

	goal := a.prompt("AI> Опишите задачу (пример: 'Открой hh.ru и найди 5 вакансий Python в Москве, удалёнка, middle'): ")
	if goal == "" {
		goal = a.cfg.DefaultGoal
	}
	a.adopt(a.interpreter.Interpret(goal))

	if err := a.driver.Home(ctx, a.page); err != nil {
		a.hint(err)
	}
	if err := a.newSearch(ctx); err != nil {
		a.hint(err)
	}
	a.notify(func(n Notifier) error {
		return n.SendStatus(fmt.Sprintf("Сессия запущена. Запрос: %s, вакансий: %d", a.spec.Query, len(a.listings)))
	})

	fmt.Fprintf(a.out, "\nСопроводительное (6–8 строк):\n\n%s\n\n%s\n\n", a.cfg.CoverLetter, helpText)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "[submit=%s] hh> ", onOff(a.submit))
		if !a.scanner.Scan() {
			a.printHistory()
			return a.scanner.Err()
		}
		line := strings.TrimSpace(a.scanner.Text())
		if line == "" {
			continue
		}

		if err := a.Handle(ctx, line); err != nil {
			if errors.Is(err, ErrExitRequested) {
				a.printHistory()
				fmt.Fprintln(a.out, "👋 До свидания!")
				return nil
			}
			a.hint(err)
		}
	}
}

// Handle executes one command line. Failures that the user can retry are
// returned so the caller can print a hint; ErrExitRequested ends the session.
func (a *Agent) Handle(ctx context.Context, line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}

	switch strings.ToLower(parts[0]) {
	case "help":
		fmt.Fprintf(a.out, "\n%s\n\n", helpText)
	case "exit":
		return ErrExitRequested
	case "list":
		a.collect()
		a.printList()
	case "refresh":
		if err := a.driver.Reload(ctx, a.page); err != nil {
			return err
		}
		if a.collect() {
			a.printList()
		} else {
			fmt.Fprintln(a.out, "[warn] Пусто/не распарсилось. Возможно, капча.")
		}
	case "next":
		return a.turnPage(ctx, a.spec.Page+1)
	case "prev":
		return a.turnPage(ctx, a.spec.Page-1)
	case "submit":
		if len(parts) < 2 || (strings.ToLower(parts[1]) != "on" && strings.ToLower(parts[1]) != "off") {
			fmt.Fprintln(a.out, "Использование: submit on|off")
			return nil
		}
		a.submit = strings.ToLower(parts[1]) == "on"
		fmt.Fprintf(a.out, "[ok] submit=%s\n", onOff(a.submit))
	case "open":
		l, ok := a.pick(parts, "open")
		if !ok {
			return nil
		}
		if err := a.driver.Open(ctx, a.page, l); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "[ok] Открыто: %s\n%s\n\n", l.Title, l.URL)
	case "apply":
		l, ok := a.pick(parts, "apply")
		if !ok {
			return nil
		}
		return a.apply(ctx, l)
	case "ai":
		return a.ai(ctx, parts[1:])
	default:
		fmt.Fprintln(a.out, "[err] Неизвестная команда. Введите help.")
	}
	return nil
}

func (a *Agent) ai(ctx context.Context, args []string) error {
	sub := ""
	if len(args) > 0 {
		sub = strings.ToLower(args[0])
	}

	switch sub {
	case "help":
		fmt.Fprintf(a.out, "\n%s\n\n", aiExamples)
		return nil
	case "top":
		a.top()
		return nil
	}

	goal := strings.Join(args, " ")
	if goal == "" {
		goal = a.prompt("AI> Сформулируйте заново (пример: 'Найди 3 вакансии Django в СПб, junior, удалёнка'): ")
	}
	if goal == "" {
		fmt.Fprintln(a.out, "[info] Пусто, команда ai отменена.")
		return nil
	}

	want := a.lastWant
	a.adopt(a.interpreter.Interpret(goal))
	if a.lastWant == nil {
		a.lastWant = want
	}
	return a.newSearch(ctx)
}

// top prints the first N listings of the current page as they appear.
func (a *Agent) top() {
	current, _ := a.collector.Collect(a.page)
	if len(current) == 0 {
		fmt.Fprintln(a.out, "[warn] Нет вакансий для top. Сделайте refresh или ai (новый поиск).")
		return
	}

	n := a.cfg.TopDefault
	if a.lastWant != nil {
		n = *a.lastWant
	}
	n = max(1, min(n, len(current)))

	fmt.Fprintf(a.out, "\nТоп %d вакансий (как на странице):\n\n", n)
	for i, l := range current[:n] {
		fmt.Fprintf(a.out, "%2d. %s\n    %s\n", i+1, l.Title, l.URL)
	}
	fmt.Fprintln(a.out)
}

func (a *Agent) apply(ctx context.Context, l models.Listing) error {
	if a.applied.IsSeen(l.URL) {
		fmt.Fprintf(a.out, "[warn] На эту вакансию уже откликались в этой сессии: %s\n", l.URL)
	}

	out := a.submitter.Apply(ctx, a.page, l, a.cfg.CoverLetter, a.submit)
	if out.Stage == scraper.StageOpen {
		return out.Err
	}
	if out.Done {
		a.applied.Add(l.URL)
	}

	switch {
	case out.Submitted:
		fmt.Fprintf(a.out, "[ok] Отклик отправлен: %s\n", l.URL)
	case out.Filled:
		fmt.Fprintf(a.out, "[ok] Письмо вставлено (НЕ отправлено). Проверьте и отправьте вручную: %s\n", l.URL)
	case out.Done:
		fmt.Fprintf(a.out, "[warn] Не удалось вставить письмо. Страница оставлена открытой: %s\n", l.URL)
	default:
		fmt.Fprintf(a.out, "[warn] Отклик не завершён (этап %s): %v\n", out.Stage, out.Err)
	}

	a.notify(func(n Notifier) error { return n.SendApplication(l, out) })
	a.page.Pause(a.cfg.AfterApplyDelay)
	return nil
}

// adopt replaces the search spec wholesale; the page index restarts at zero.
// A zero count is kept as unset.
func (a *Agent) adopt(it models.Intent) {
	a.spec = it.Spec.WithPage(0)
	a.lastWant = it.DesiredCount
	if a.lastWant != nil && *a.lastWant <= 0 {
		a.lastWant = nil
	}
}

// newSearch runs the current spec, reports the active filters and the result.
func (a *Agent) newSearch(ctx context.Context) error {
	if err := a.driver.Run(ctx, a.page, a.spec); err != nil {
		return err
	}
	found := a.collect()
	a.printFilters()
	if found {
		a.printList()
	} else {
		fmt.Fprintln(a.out, "[warn] Не удалось собрать вакансии (возможна капча/изменение верстки). Попробуйте refresh или ai.")
	}
	return nil
}

func (a *Agent) turnPage(ctx context.Context, p int) error {
	a.spec = a.spec.WithPage(p)
	if err := a.driver.Run(ctx, a.page, a.spec); err != nil {
		return err
	}
	a.collect()
	a.printList()
	return nil
}

// collect replaces the listing set from the current page and reports
// whether anything was found. An empty page is captured for debugging.
func (a *Agent) collect() bool {
	listings, err := a.collector.Collect(a.page)
	a.listings = listings
	if err != nil {
		a.logger.Printf("⚠️ Collection degraded: %v", err)
		if _, shotErr := a.shots.CaptureAndLog(a.page, "empty_listing", "Empty listing page"); shotErr != nil {
			a.logger.Printf("⚠️ %v", shotErr)
		}
	}
	return len(a.listings) > 0
}

// pick resolves the 1-based index argument of cmd against the listing set.
func (a *Agent) pick(parts []string, cmd string) (models.Listing, bool) {
	if len(parts) < 2 {
		fmt.Fprintf(a.out, "Использование: %s N\n", cmd)
		return models.Listing{}, false
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || n < 1 || n > len(a.listings) {
		fmt.Fprintln(a.out, "[err] Неверный номер вакансии.")
		return models.Listing{}, false
	}
	return a.listings[n-1], true
}

func (a *Agent) prompt(text string) string {
	fmt.Fprint(a.out, text)
	if !a.scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(a.scanner.Text())
}

func (a *Agent) hint(err error) {
	if reason, ok := browser.ReasonOf(err); ok && reason == browser.ReasonTimeout {
		fmt.Fprintln(a.out, "[warn] Таймаут. Попробуйте refresh или повторите команду.")
		return
	}
	fmt.Fprintf(a.out, "[warn] Ошибка: %v\n", err)
	a.notify(func(n Notifier) error { return n.SendError(err) })
}

func (a *Agent) notify(send func(Notifier) error) {
	if a.notifier == nil {
		return
	}
	if err := send(a.notifier); err != nil {
		a.logger.Printf("⚠️ Failed to send notification: %v", err)
	}
}

// printHistory lists the listings applied to in this session.
func (a *Agent) printHistory() {
	if a.applied.Len() == 0 {
		return
	}
	fmt.Fprintf(a.out, "\nОтклики за сессию: %d\n", a.applied.Len())
	for _, u := range a.applied.URLs() {
		fmt.Fprintf(a.out, "- %s\n", u)
	}
}

func (a *Agent) printList() {
	fmt.Fprintf(a.out, "\nСтраница: %d | Вакансий: %d\n\n", a.spec.Page, len(a.listings))
	for i, l := range a.listings {
		fmt.Fprintf(a.out, "%2d. %s\n", i+1, l.Title)
	}
	fmt.Fprintln(a.out)
}

func (a *Agent) printFilters() {
	s := a.spec
	experience := "не задано"
	if s.Experience != nil {
		experience = string(*s.Experience)
	}
	fmt.Fprintln(a.out, "\nАктивный поиск:")
	fmt.Fprintf(a.out, "- text: %s\n", s.Query)
	fmt.Fprintf(a.out, "- area: %s\n", models.RegionName(s.Region))
	fmt.Fprintf(a.out, "- experience: %s\n", experience)
	fmt.Fprintf(a.out, "- remote: %s\n", yesNo(s.Remote))
	fmt.Fprintf(a.out, "- salary: %s\n", models.SalaryLabel(s.SalaryFloor))
	fmt.Fprintf(a.out, "- only_with_salary: %s\n\n", yesNo(s.RequireSalary))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func yesNo(b bool) string {
	if b {
		return "да"
	}
	return "нет"
}
