// Package intent turns a free-form goal ("найди 5 вакансий Django в СПб,
// junior, удалёнка") into a search spec. Detectors are independent: a signal
// that is missing leaves its field unset and never blocks the others.
package intent

import (
	"regexp"
	"strconv"
	"strings"

	"go-hh-agent/internal/config"
	"go-hh-agent/internal/models"
	"go-hh-agent/utils"
)

const fallbackQuery = "Python разработчик"

// RE2's \b only knows ASCII word characters, so boundaries are spelled out
// to keep Cyrillic letters inside words.
const (
	lb = `(?:^|[^\p{L}\p{N}_])`
	rb = `(?:[^\p{L}\p{N}_]|$)`
)

var (
	countRegex     = regexp.MustCompile(lb + `(\d{1,2})` + rb)
	range1to3Regex = regexp.MustCompile(lb + `1\s*[-–]\s*3` + rb)
	range3to6Regex = regexp.MustCompile(lb + `3\s*[-–]\s*6` + rb)
	over6Regex     = regexp.MustCompile(lb + `(?:6\s*\+|более\s*6)` + rb)
	fillerRegex    = regexp.MustCompile(`(?i)` + lb + `(открой|открыть|hh\.ru|hh|хх\.ру|хх|найди|найти|покажи|ваканси[яийю]|с фильтрами|по фильтрам)` + rb)
)

// Salary patterns are anchored on the right only, so "1234567" reads as 234567.
var (
	salaryKRegex = regexp.MustCompile(`(\d{2,3})\s*(?:к|k|тыс\p{L}*)` + rb)
	salaryRegex  = regexp.MustCompile(`(\d{5,6})` + rb)
)

type regionKeys struct {
	region models.Region
	keys   []string
}

// Checked in order; the first set that matches wins.
var regionKeywords = []regionKeys{
	{models.RegionMoscow, []string{"моск"}},
	{models.RegionSaintPetersburg, []string{"питер", "спб", "санкт-петер"}},
	{models.RegionRussia, []string{"росси", "рф"}},
}

type experienceKeys struct {
	band models.Experience
	keys []string
}

var experienceKeywords = []experienceKeys{
	{models.ExperienceNone, []string{"без опыта", "стажер", "стажёр", "intern", "junior", "джун"}},
	{models.ExperienceBetween1And3, []string{"middle", "мидл", "мид"}},
	{models.ExperienceBetween3And6, []string{"senior", "сеньор", "синьор", "lead", "лид"}},
}

var (
	remoteKeywords     = []string{"удален", "удалён", "remote", "из дома"}
	onlySalaryKeywords = []string{"только с зп", "только с зарплат", "с зарплатой", "only_with_salary"}
)

type roleKeys struct {
	label string
	keys  []string
}

// Hits are emitted in this order, each label at most once.
var roleKeywords = []roleKeys{
	{"Python", []string{"python", "питон"}},
	{"backend", []string{"backend", "бэкенд", "бекенд"}},
	{"Django", []string{"django"}},
	{"FastAPI", []string{"fastapi"}},
	{"asyncio", []string{"asyncio"}},
}

// Interpreter is deterministic and never fails.
type Interpreter struct {
	defaultQuery string
	roleSuffix   string
}

func New(cfg *config.Config) *Interpreter {
	return &Interpreter{defaultQuery: cfg.DefaultQuery, roleSuffix: cfg.RoleSuffix}
}

// Interpret parses text into a fresh intent at page 0.
func (in *Interpreter) Interpret(text string) models.Intent {
	t := utils.NormText(text)
	tl := strings.ToLower(t)

	spec := models.SearchSpec{
		Region:     detectRegion(tl),
		Experience: detectExperience(tl),
		Remote:     containsAny(tl, remoteKeywords),
	}
	spec.SalaryFloor = detectSalary(tl)
	spec.RequireSalary = spec.SalaryFloor != nil && containsAny(tl, onlySalaryKeywords)
	spec.Query = in.buildQuery(t, tl)

	return models.Intent{Spec: spec, DesiredCount: detectCount(tl)}
}

func detectCount(tl string) *int {
	m := countRegex.FindStringSubmatch(tl)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

func detectRegion(tl string) *models.Region {
	for _, rk := range regionKeywords {
		if containsAny(tl, rk.keys) {
			r := rk.region
			return &r
		}
	}
	return nil
}

// Numeric ranges are checked after keywords and override them.
func detectExperience(tl string) *models.Experience {
	var band *models.Experience
	for _, ek := range experienceKeywords {
		if containsAny(tl, ek.keys) {
			b := ek.band
			band = &b
			break
		}
	}

	set := func(b models.Experience) { band = &b }
	if range1to3Regex.MatchString(tl) {
		set(models.ExperienceBetween1And3)
	}
	if range3to6Regex.MatchString(tl) {
		set(models.ExperienceBetween3And6)
	}
	if over6Regex.MatchString(tl) {
		set(models.ExperienceMoreThan6)
	}
	return band
}

// "200к" style wins over a bare 5-6 digit number.
func detectSalary(tl string) *int {
	if m := salaryKRegex.FindStringSubmatch(tl); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			n *= 1000
			return &n
		}
	}
	if m := salaryRegex.FindStringSubmatch(tl); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return &n
		}
	}
	return nil
}

func (in *Interpreter) buildQuery(t, tl string) string {
	var bits []string
	for _, rk := range roleKeywords {
		if containsAny(tl, rk.keys) {
			bits = append(bits, rk.label)
		}
	}

	query := t
	if len(bits) > 0 {
		query = strings.Join(bits, " ")
		if in.roleSuffix != "" {
			query += " " + in.roleSuffix
		}
	}

	query = utils.NormText(stripFiller(query))
	if query == "" {
		query = in.defaultQuery
	}
	if query == "" {
		query = fallbackQuery
	}
	return query
}

// stripFiller removes command and site words. Adjacent fillers share a
// separator, so replace until nothing changes.
func stripFiller(s string) string {
	for {
		out := fillerRegex.ReplaceAllString(s, " ")
		if out == s {
			return s
		}
		s = out
	}
}

func containsAny(s string, keys []string) bool {
	for _, k := range keys {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
