package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/scalehouse/internal/contract"
	"github.com/alexanderramin/scalehouse/internal/domain"
	"github.com/spf13/pflag"
)

// dateValue is a pflag.Value for a YYYY-MM-DD calendar day.
type dateValue struct{ p *time.Time }

func (v dateValue) String() string {
	if v.p == nil || v.p.IsZero() {
		return ""
	}
	return v.p.Format(domain.DateLayout)
}

func (v dateValue) Set(s string) error {
	t, err := domain.ParseDate(s)
	if err != nil {
		return err
	}
	*v.p = t
	return nil
}

func (dateValue) Type() string { return "date" }

// optionalDateValue leaves the target nil until the flag is set.
type optionalDateValue struct{ p **time.Time }

func (v optionalDateValue) String() string {
	if v.p == nil || *v.p == nil {
		return ""
	}
	return (*v.p).Format(domain.DateLayout)
}

func (v optionalDateValue) Set(s string) error {
	t, err := domain.ParseDate(s)
	if err != nil {
		return err
	}
	*v.p = &t
	return nil
}

func (optionalDateValue) Type() string { return "date" }

type zoomValue struct{ p *domain.ZoomLevel }

func (v zoomValue) String() string { return string(*v.p) }

func (v zoomValue) Set(s string) error {
	z, ok := domain.ParseZoomLevel(strings.ToLower(s))
	if !ok {
		return fmt.Errorf("unknown zoom %q (day, week, month, year)", s)
	}
	*v.p = z
	return nil
}

func (zoomValue) Type() string { return "zoom" }

// statusValue accepts a card status or "all", which clears the filter.
type statusValue struct{ p *domain.CardStatus }

func (v statusValue) String() string {
	if *v.p == "" {
		return "all"
	}
	return string(*v.p)
}

func (v statusValue) Set(s string) error {
	s = strings.ToLower(s)
	if s == "all" || s == "" {
		*v.p = ""
		return nil
	}
	if !domain.ValidCardStatuses[s] {
		return fmt.Errorf("unknown status %q (active, upcoming, expired, all)", s)
	}
	*v.p = domain.CardStatus(s)
	return nil
}

func (statusValue) Type() string { return "status" }

type gestureModeValue struct{ p *domain.GestureMode }

func (v gestureModeValue) String() string { return string(*v.p) }

func (v gestureModeValue) Set(s string) error {
	m, ok := domain.ParseGestureMode(strings.ToLower(s))
	if !ok {
		return fmt.Errorf("unknown mode %q (drag, resize-start, resize-end)", s)
	}
	*v.p = m
	return nil
}

func (gestureModeValue) Type() string { return "mode" }

func dateVar(fs *pflag.FlagSet, p *time.Time, name, usage string) {
	fs.Var(dateValue{p}, name, usage)
}

func optionalDateVar(fs *pflag.FlagSet, p **time.Time, name, usage string) {
	fs.Var(optionalDateValue{p}, name, usage)
}

func statusVar(fs *pflag.FlagSet, p *domain.CardStatus) {
	fs.Var(statusValue{p}, "status", "Filter by status: active, upcoming, expired, all")
}

// addBoardFlags registers the window and filter flags shared by the
// timeline and tui commands.
func addBoardFlags(fs *pflag.FlagSet, req *contract.BoardRequest) {
	fs.VarP(zoomValue{&req.Zoom}, "zoom", "z", "Zoom level: day, week, month, year")
	dateVar(fs, &req.Anchor, "date", "Any day inside the window (YYYY-MM-DD, default today)")
	fs.StringSliceVarP(&req.ProductScope, "product", "p", nil, "Limit to product codes (repeatable)")
	fs.StringVar(&req.Search, "search", "", "Only products whose code or name contains this text")
	statusVar(fs, &req.Status)
}
