package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/rustyeddy/tradejournal/journal"
)

// Confirmer asks a yes/no question before a destructive action.
type Confirmer interface {
	Confirm(message string) (bool, error)
}

// SurveyConfirmer prompts on the terminal. The default answer is no.
type SurveyConfirmer struct {
	Opts []survey.AskOpt
}

func (c SurveyConfirmer) Confirm(message string) (bool, error) {
	var ok bool
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}
	if err := survey.AskOne(prompt, &ok, c.Opts...); err != nil {
		return false, err
	}
	return ok, nil
}

// AssumeYes answers every question with yes, for --yes and scripts.
type AssumeYes struct{}

func (AssumeYes) Confirm(string) (bool, error) { return true, nil }

// TradeAnswers is the trade form as typed. Numbers stay text until
// Apply parses them.
type TradeAnswers struct {
	Date       string `survey:"date"`
	Symbol     string `survey:"symbol"`
	Side       string `survey:"side"`
	Timeframe  string `survey:"timeframe"`
	Setup      string `survey:"setup"`
	Size       string `survey:"size"`
	Entry      string `survey:"entry"`
	StopLevel  string `survey:"stopLevel"`
	TakeProfit string `survey:"takeProfit"`
	ActualExit string `survey:"actualExit"`
	Fees       string `survey:"fees"`
	Strategy   string `survey:"strategy"`
	Emotion    string `survey:"emotion"`
	Screenshot string `survey:"screenshot"`
	Notes      string `survey:"notes"`
}

// Apply lays the answers over base. Blank numbers are 0.
func (a TradeAnswers) Apply(base journal.Record) (journal.Record, error) {
	r := base
	r.Date = strings.TrimSpace(a.Date)
	r.Symbol = strings.ToUpper(strings.TrimSpace(a.Symbol))
	r.Side = a.Side
	r.Timeframe = strings.TrimSpace(a.Timeframe)
	r.Setup = a.Setup
	r.Strategy = a.Strategy
	r.Emotion = a.Emotion
	r.Screenshot = strings.TrimSpace(a.Screenshot)
	r.Notes = a.Notes

	nums := []struct {
		name string
		text string
		dst  *float64
	}{
		{"size", a.Size, &r.Size},
		{"entry", a.Entry, &r.Entry},
		{"stopLevel", a.StopLevel, &r.StopLevel},
		{"takeProfit", a.TakeProfit, &r.TakeProfit},
		{"actualExit", a.ActualExit, &r.ActualExit},
		{"fees", a.Fees, &r.Fees},
	}
	for _, n := range nums {
		v, err := parseAmount(n.text)
		if err != nil {
			return journal.Record{}, fmt.Errorf("%s: %w", n.name, err)
		}
		*n.dst = v
	}
	return r, nil
}

func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func numberValidator(val interface{}) error {
	s, _ := val.(string)
	if _, err := parseAmount(s); err != nil {
		return fmt.Errorf("%q is not a number", s)
	}
	return nil
}

func dateValidator(val interface{}) error {
	s, _ := val.(string)
	if _, err := journal.Day(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

// tradeQuestions builds the form with base as the defaults.
func tradeQuestions(base journal.Record) []*survey.Question {
	text := func(name, msg, def string, v survey.Validator) *survey.Question {
		q := &survey.Question{
			Name:   name,
			Prompt: &survey.Input{Message: msg, Default: def},
		}
		if v != nil {
			q.Validate = v
		}
		return q
	}
	side := base.Side
	if side != "SHORT" {
		side = "LONG"
	}
	return []*survey.Question{
		text("date", "Date (YYYY-MM-DD):", base.Date, survey.ComposeValidators(survey.Required, dateValidator)),
		text("symbol", "Symbol:", base.Symbol, survey.Required),
		{
			Name:   "side",
			Prompt: &survey.Select{Message: "Side:", Options: []string{"LONG", "SHORT"}, Default: side},
		},
		text("timeframe", "Timeframe:", base.Timeframe, nil),
		text("setup", "Setup:", base.Setup, nil),
		text("size", "Size:", number(base.Size), numberValidator),
		text("entry", "Entry:", number(base.Entry), numberValidator),
		text("stopLevel", "Stop level:", number(base.StopLevel), numberValidator),
		text("takeProfit", "Take profit:", number(base.TakeProfit), numberValidator),
		text("actualExit", "Actual exit:", number(base.ActualExit), numberValidator),
		text("fees", "Fees:", number(base.Fees), numberValidator),
		text("strategy", "Strategy:", base.Strategy, nil),
		text("emotion", "Emotion:", base.Emotion, nil),
		text("screenshot", "Screenshot URL:", base.Screenshot, nil),
		{
			Name:   "notes",
			Prompt: &survey.Multiline{Message: "Notes:", Default: base.Notes},
		},
	}
}

// PromptTrade walks the trade form on the terminal, prefilled from base.
func PromptTrade(base journal.Record, opts ...survey.AskOpt) (journal.Record, error) {
	var answers TradeAnswers
	if err := survey.Ask(tradeQuestions(base), &answers, opts...); err != nil {
		return journal.Record{}, err
	}
	return answers.Apply(base)
}
