// Package ui is the gocui front end: endpoint picker, request builder, and
// response viewer. All state lives on the App and is mutated only from the
// gocui event loop.
package ui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/jroimartin/gocui"
	"github.com/rs/zerolog"

	"galcon/internal/catalog"
	"galcon/internal/collector"
	"galcon/internal/credstore"
	"galcon/internal/dispatch"
	"galcon/internal/model"
	"galcon/internal/shellcmd"
)

type screen int

const (
	screenEndpoints screen = iota
	screenBuilder
	screenResponse
)

type focusPane int

const (
	paneFields focusPane = iota
	paneHeaders
)

// headerRow identifies one entry of the headers pane.
type headerRow struct {
	id    string
	label string
}

var headerRows = []headerRow{
	{"name", "galaxy-ap-name"},
	{"secret", "galaxy-ap-password"},
	{"search-type", "galaxy-search-type"},
	{"session-id", "galaxy-client-session-id"},
	{"client-type", "galaxy-client-type"},
}

type App struct {
	g   *gocui.Gui
	log zerolog.Logger

	registry   *catalog.Registry
	dispatcher *dispatch.Dispatcher
	store      *credstore.Store

	scr screen

	filter   string
	filtered []int
	selected int

	active    model.EndpointDescriptor
	fieldVals map[string]string
	headers   dispatch.HeaderValues
	bodyRaw   string

	pane       focusPane
	fieldRow   int
	hdrRow     int
	remember   bool
	showSecret bool

	editing    bool
	editTarget string

	suspendEditorFile string

	lastReq    model.RequestEnvelope
	lastEnv    model.ResponseEnvelope
	lastNetErr error
	hasResult  bool

	notice string
}

// New wires the application. seed pre-fills the credential headers
// (remembered credentials, falling back to environment values).
func New(reg *catalog.Registry, d *dispatch.Dispatcher, store *credstore.Store, seed model.Credentials, remember bool, log zerolog.Logger) *App {
	a := &App{
		log:        log,
		registry:   reg,
		dispatcher: d,
		store:      store,
		scr:        screenEndpoints,
		fieldVals:  map[string]string{},
		remember:   remember,
	}
	a.headers.Name = seed.Name
	a.headers.Secret = seed.Secret
	a.recomputeFilter()
	return a
}

// singleLineEditor is an editor that doesn't consume Enter (lets keybinding handle it)
type singleLineEditor struct{}

func (e singleLineEditor) Edit(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) {
	switch {
	case key == gocui.KeyBackspace || key == gocui.KeyBackspace2:
		v.EditDelete(true)
	case key == gocui.KeyDelete:
		v.EditDelete(false)
	case key == gocui.KeyArrowLeft:
		v.MoveCursor(-1, 0, false)
	case key == gocui.KeyArrowRight:
		v.MoveCursor(1, 0, false)
	case key == gocui.KeyHome || key == gocui.KeyCtrlA:
		v.SetCursor(0, 0)
	case key == gocui.KeyEnd || key == gocui.KeyCtrlE:
		line := v.Buffer()
		v.SetCursor(len(line)-1, 0)
	case key == gocui.KeyEnter:
		// don't handle - let keybinding process it
	case ch != 0 && mod == 0:
		v.EditWrite(ch)
	}
}

func (a *App) Run() error {
	// Dropping into $EDITOR for the raw body requires leaving the TUI.
	// gocui has no suspend/resume, so we exit the main loop, run the
	// external command, and re-create the GUI.
	for {
		g, err := gocui.NewGui(gocui.OutputNormal)
		if err != nil {
			return err
		}
		a.g = g

		g.BgColor = gocui.ColorBlack
		g.FgColor = gocui.ColorWhite
		g.Cursor = true
		g.InputEsc = true
		g.SetManagerFunc(a.layout)

		if err := a.bindKeys(); err != nil {
			g.Close()
			return err
		}

		err = g.MainLoop()
		g.Close()

		if a.suspendEditorFile != "" {
			file := a.suspendEditorFile
			a.suspendEditorFile = ""
			if err := a.runExternalEditor(file); err != nil {
				a.notice = err.Error()
			}
			continue
		}

		if err != nil && err != gocui.ErrQuit {
			return err
		}
		return nil
	}
}

func (a *App) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if v, err := g.SetView("header", 0, 0, maxX-1, 2); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		v.BgColor = gocui.ColorBlack
		v.FgColor = gocui.ColorWhite
		fmt.Fprintf(v, "%sgalcon%s  -  %s\n", colorGreen, colorReset, a.dispatcher.BaseURL())
	}

	if v, err := g.SetView("footer", 0, maxY-2, maxX-1, maxY); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		v.BgColor = gocui.ColorBlack
		v.FgColor = gocui.ColorWhite
	}
	a.renderFooter()

	switch a.scr {
	case screenEndpoints:
		return a.layoutEndpoints(maxX, maxY)
	case screenBuilder:
		return a.layoutBuilder(maxX, maxY)
	case screenResponse:
		return a.layoutResponse(maxX, maxY)
	default:
		return nil
	}
}

func (a *App) layoutEndpoints(maxX, maxY int) error {
	a.clearMainViews([]string{"filter", "endpoints"})

	if v, err := a.g.SetView("filter", 0, 2, maxX-1, 4); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Filter"
		v.Editable = false
	}
	if v, err := a.g.SetView("endpoints", 0, 4, maxX-1, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Endpoints"
		v.Highlight = true
		v.SelFgColor = gocui.ColorBlack
		v.SelBgColor = gocui.ColorGreen
		v.Autoscroll = false
	}
	a.renderFilter()
	a.renderEndpoints()
	if _, err := a.g.SetCurrentView("endpoints"); err != nil {
		return err
	}
	return nil
}

func (a *App) layoutBuilder(maxX, maxY int) error {
	keep := []string{"selected", "fields", "headers", "body"}
	if a.editing {
		keep = append(keep, "edit")
	}
	a.clearMainViews(keep)

	if v, err := a.g.SetView("selected", 0, 2, maxX-1, 5); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Selected endpoint"
	}

	top := 5
	bottom := maxY - 3
	bodyH := 4
	if a.active.RawOnly() {
		// no form: give the space to the raw body preview
		bodyH = (bottom - top) / 2
	}
	paneBottom := bottom - bodyH
	half := (paneBottom - top) / 2

	if !a.active.RawOnly() {
		if v, err := a.g.SetView("fields", 0, top, maxX-1, top+half); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
			v.Highlight = true
		}
		if v, err := a.g.SetView("headers", 0, top+half, maxX-1, paneBottom); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
			v.Highlight = true
		}
	} else {
		a.pane = paneHeaders
		if v, err := a.g.SetView("headers", 0, top, maxX-1, paneBottom); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
			v.Highlight = true
		}
	}
	if v, err := a.g.SetView("body", 0, paneBottom, maxX-1, bottom); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Body"
	}

	a.renderBuilder()
	a.updatePanelColors()

	if a.editing {
		if _, err := a.g.View("edit"); err == nil {
			a.g.SetViewOnTop("edit")
			a.g.SetCurrentView("edit")
		}
	} else {
		a.setBuilderFocus()
	}
	return nil
}

func (a *App) layoutResponse(maxX, maxY int) error {
	a.clearMainViews([]string{"response"})

	if v, err := a.g.SetView("response", 0, 2, maxX-1, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Response"
		v.Wrap = false
		v.Autoscroll = false
	}
	a.renderResponse()
	if _, err := a.g.SetCurrentView("response"); err != nil {
		return err
	}
	return nil
}

func (a *App) clearMainViews(keep []string) {
	keepSet := map[string]bool{"header": true, "footer": true}
	for _, k := range keep {
		keepSet[k] = true
	}
	for _, n := range []string{"filter", "endpoints", "selected", "fields", "headers", "body", "edit", "response"} {
		if keepSet[n] {
			continue
		}
		if v, err := a.g.View(n); err == nil {
			v.Clear()
			a.g.DeleteView(n)
		}
	}
}

func (a *App) updatePanelColors() {
	panels := []struct {
		name string
		pane focusPane
	}{
		{"fields", paneFields},
		{"headers", paneHeaders},
	}
	for _, p := range panels {
		v, err := a.g.View(p.name)
		if err != nil {
			continue
		}
		if a.pane == p.pane && !a.editing {
			v.SelBgColor = gocui.ColorGreen
			v.SelFgColor = gocui.ColorBlack
			v.FgColor = gocui.ColorWhite
		} else {
			v.SelBgColor = gocui.ColorDefault
			v.SelFgColor = gocui.ColorDefault
			v.FgColor = gocui.ColorDefault
		}
	}
}

func (a *App) setBuilderFocus() {
	if a.scr != screenBuilder || a.editing {
		return
	}
	name := "fields"
	if a.pane == paneHeaders || a.active.RawOnly() {
		name = "headers"
	}
	a.g.SetCurrentView(name)
}

func (a *App) bindKeys() error {
	g := a.g

	if err := g.SetKeybinding("", gocui.KeyEsc, gocui.ModNone, a.back); err != nil {
		return err
	}
	if err := g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, a.quit); err != nil {
		return err
	}
	if err := g.SetKeybinding("", gocui.KeyCtrlR, gocui.ModNone, a.sendRequest); err != nil {
		return err
	}

	// endpoints list
	if err := g.SetKeybinding("endpoints", 'q', gocui.ModNone, a.quitFromList); err != nil {
		return err
	}
	if err := g.SetKeybinding("endpoints", gocui.KeyArrowDown, gocui.ModNone, a.moveSel(1)); err != nil {
		return err
	}
	if err := g.SetKeybinding("endpoints", gocui.KeyArrowUp, gocui.ModNone, a.moveSel(-1)); err != nil {
		return err
	}
	if err := g.SetKeybinding("endpoints", gocui.KeyEnter, gocui.ModNone, a.openBuilder); err != nil {
		return err
	}
	if err := g.SetKeybinding("endpoints", gocui.KeyBackspace, gocui.ModNone, a.filterBackspace); err != nil {
		return err
	}
	if err := g.SetKeybinding("endpoints", gocui.KeyBackspace2, gocui.ModNone, a.filterBackspace); err != nil {
		return err
	}
	// typing filters; 'q' is reserved for quit above, the filter rarely needs it
	for r := rune(32); r <= rune(126); r++ {
		if r == 'q' {
			continue
		}
		if err := g.SetKeybinding("endpoints", r, gocui.ModNone, a.appendFilterRune(r)); err != nil {
			return err
		}
	}

	// builder panes
	if err := g.SetKeybinding("", gocui.KeyTab, gocui.ModNone, a.tabPane); err != nil {
		return err
	}
	for _, pane := range []string{"fields", "headers"} {
		if err := g.SetKeybinding(pane, gocui.KeyArrowDown, gocui.ModNone, a.moveRow(1)); err != nil {
			return err
		}
		if err := g.SetKeybinding(pane, gocui.KeyArrowUp, gocui.ModNone, a.moveRow(-1)); err != nil {
			return err
		}
		if err := g.SetKeybinding(pane, gocui.KeyEnter, gocui.ModNone, a.beginEdit); err != nil {
			return err
		}
		if err := g.SetKeybinding(pane, 'd', gocui.ModNone, a.clearRow); err != nil {
			return err
		}
		if err := g.SetKeybinding(pane, 'e', gocui.ModNone, a.editBodyInEditor); err != nil {
			return err
		}
		if err := g.SetKeybinding(pane, 'f', gocui.ModNone, a.formatRawBody); err != nil {
			return err
		}
		if err := g.SetKeybinding(pane, 's', gocui.ModNone, a.resetToSample); err != nil {
			return err
		}
		if err := g.SetKeybinding(pane, 'c', gocui.ModNone, a.copyShellCommand); err != nil {
			return err
		}
		if err := g.SetKeybinding(pane, 't', gocui.ModNone, a.toggleSecret); err != nil {
			return err
		}
		if err := g.SetKeybinding(pane, 'm', gocui.ModNone, a.toggleRemember); err != nil {
			return err
		}
	}

	// edit modal
	if err := g.SetKeybinding("edit", gocui.KeyEnter, gocui.ModNone, a.confirmEdit); err != nil {
		return err
	}

	// response
	if err := g.SetKeybinding("response", 'q', gocui.ModNone, a.quitFromList); err != nil {
		return err
	}
	if err := g.SetKeybinding("response", gocui.KeyArrowDown, gocui.ModNone, a.scrollResponse(1)); err != nil {
		return err
	}
	if err := g.SetKeybinding("response", gocui.KeyArrowUp, gocui.ModNone, a.scrollResponse(-1)); err != nil {
		return err
	}
	if err := g.SetKeybinding("response", 'r', gocui.ModNone, a.rerun); err != nil {
		return err
	}
	if err := g.SetKeybinding("response", 'y', gocui.ModNone, a.copyResponse); err != nil {
		return err
	}
	if err := g.SetKeybinding("response", 'c', gocui.ModNone, a.copyShellCommand); err != nil {
		return err
	}
	if err := g.SetKeybinding("response", gocui.KeyEnter, gocui.ModNone, a.responseToEndpoints); err != nil {
		return err
	}

	return nil
}

func (a *App) quit(*gocui.Gui, *gocui.View) error { return gocui.ErrQuit }

func (a *App) quitFromList(*gocui.Gui, *gocui.View) error {
	if a.editing {
		return nil
	}
	return gocui.ErrQuit
}

func (a *App) back(*gocui.Gui, *gocui.View) error {
	if a.editing {
		return a.closeEdit()
	}
	switch a.scr {
	case screenResponse:
		a.scr = screenBuilder
	case screenBuilder:
		a.scr = screenEndpoints
	case screenEndpoints:
		// no previous screen
	}
	a.notice = ""
	return nil
}

// --- endpoint list ---

func (a *App) appendFilterRune(r rune) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		if a.scr != screenEndpoints || a.editing {
			return nil
		}
		a.filter += string(r)
		a.recomputeFilter()
		a.renderFilter()
		a.renderEndpoints()
		return nil
	}
}

func (a *App) filterBackspace(*gocui.Gui, *gocui.View) error {
	if a.scr != screenEndpoints || a.editing {
		return nil
	}
	if len(a.filter) == 0 {
		return nil
	}
	a.filter = a.filter[:len(a.filter)-1]
	a.recomputeFilter()
	a.renderFilter()
	a.renderEndpoints()
	return nil
}

func (a *App) recomputeFilter() {
	endpoints := a.registry.All()
	needle := strings.TrimSpace(a.filter)
	if needle == "" {
		a.filtered = a.filtered[:0]
		for i := range endpoints {
			a.filtered = append(a.filtered, i)
		}
		return
	}

	var scored []scoredIdx
	for i, ep := range endpoints {
		cand := strings.ToLower(ep.Label + " " + ep.Path + " " + ep.Category)
		if s, ok := fuzzyMatchScore(needle, cand); ok {
			scored = append(scored, scoredIdx{idx: i, score: s})
		}
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score == scored[j].score {
			return scored[i].idx < scored[j].idx
		}
		return scored[i].score < scored[j].score
	})
	a.filtered = a.filtered[:0]
	for _, s := range scored {
		a.filtered = append(a.filtered, s.idx)
	}
	if a.selected >= len(a.filtered) {
		a.selected = 0
	}
}

func (a *App) moveSel(delta int) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		if a.scr != screenEndpoints || len(a.filtered) == 0 {
			return nil
		}
		a.selected += delta
		if a.selected < 0 {
			a.selected = 0
		}
		if a.selected >= len(a.filtered) {
			a.selected = len(a.filtered) - 1
		}
		if ev, err := a.g.View("endpoints"); err == nil {
			ev.SetCursor(0, a.selected)
		}
		return nil
	}
}

func (a *App) openBuilder(*gocui.Gui, *gocui.View) error {
	if a.scr != screenEndpoints || len(a.filtered) == 0 {
		return nil
	}
	idx := a.filtered[a.selected]
	a.active = a.registry.All()[idx]
	a.fieldVals = map[string]string{}
	a.bodyRaw = ""
	if a.active.RawOnly() {
		a.bodyRaw = a.sampleJSON()
	}
	a.pane = paneFields
	if a.active.RawOnly() {
		a.pane = paneHeaders
	}
	a.fieldRow = 0
	a.hdrRow = 0
	a.scr = screenBuilder
	a.notice = ""
	return nil
}

func (a *App) responseToEndpoints(*gocui.Gui, *gocui.View) error {
	if a.scr != screenResponse {
		return nil
	}
	a.scr = screenEndpoints
	a.notice = ""
	return nil
}

// --- builder ---

func (a *App) tabPane(*gocui.Gui, *gocui.View) error {
	if a.scr != screenBuilder || a.editing || a.active.RawOnly() {
		return nil
	}
	if a.pane == paneFields {
		a.pane = paneHeaders
	} else {
		a.pane = paneFields
	}
	a.updatePanelColors()
	a.setBuilderFocus()
	return nil
}

func (a *App) rowCount() int {
	if a.pane == paneFields {
		return len(a.active.Fields)
	}
	return len(headerRows)
}

func (a *App) moveRow(delta int) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		if a.scr != screenBuilder || a.editing {
			return nil
		}
		row := a.currentRow() + delta
		if row < 0 {
			row = 0
		}
		if n := a.rowCount(); row >= n {
			row = n - 1
		}
		if row < 0 {
			row = 0
		}
		a.setCurrentRow(row)
		if v != nil {
			v.SetCursor(0, row)
		}
		return nil
	}
}

func (a *App) currentRow() int {
	if a.pane == paneFields {
		return a.fieldRow
	}
	return a.hdrRow
}

func (a *App) setCurrentRow(row int) {
	if a.pane == paneFields {
		a.fieldRow = row
	} else {
		a.hdrRow = row
	}
}

func (a *App) clearRow(*gocui.Gui, *gocui.View) error {
	if a.scr != screenBuilder || a.editing {
		return nil
	}
	if a.pane == paneFields {
		if a.fieldRow < len(a.active.Fields) {
			delete(a.fieldVals, a.active.Fields[a.fieldRow].Key)
		}
	} else if a.hdrRow < len(headerRows) {
		a.setHeaderValue(headerRows[a.hdrRow].id, "")
		a.publishCredentialChange()
	}
	a.renderBuilder()
	return nil
}

func (a *App) headerValue(id string) string {
	switch id {
	case "name":
		return a.headers.Name
	case "secret":
		return a.headers.Secret
	case "search-type":
		return a.headers.SearchType
	case "session-id":
		return a.headers.SessionID
	case "client-type":
		return a.headers.ClientType
	}
	return ""
}

func (a *App) setHeaderValue(id, val string) {
	switch id {
	case "name":
		a.headers.Name = val
	case "secret":
		a.headers.Secret = val
	case "search-type":
		a.headers.SearchType = val
	case "session-id":
		a.headers.SessionID = val
	case "client-type":
		a.headers.ClientType = val
	}
}

// publishCredentialChange hands edited credentials to the store, which owns
// the persistence decision: remember on -> write through, remember off ->
// nothing stored.
func (a *App) publishCredentialChange() {
	if a.store == nil || !a.remember {
		return
	}
	if err := a.store.Remember(a.headers.Credentials()); err != nil {
		a.log.Warn().Err(err).Msg("persist credentials")
	}
}

func (a *App) beginEdit(g *gocui.Gui, v *gocui.View) error {
	if a.scr != screenBuilder || a.editing {
		return nil
	}

	var key, current, title string
	if a.pane == paneFields {
		if a.fieldRow >= len(a.active.Fields) {
			return nil
		}
		f := a.active.Fields[a.fieldRow]
		key = "field:" + f.Key
		current = a.fieldVals[f.Key]
		title = f.Label
		if title == "" {
			title = f.Key
		}
	} else {
		if a.hdrRow >= len(headerRows) {
			return nil
		}
		h := headerRows[a.hdrRow]
		key = "header:" + h.id
		current = a.headerValue(h.id)
		title = h.label
	}

	a.editing = true
	a.editTarget = key

	maxX, maxY := g.Size()
	width := 60
	if width > maxX-4 {
		width = maxX - 4
	}
	height := 3
	x0 := (maxX - width) / 2
	y0 := (maxY - height) / 2

	if ev, err := g.SetView("edit", x0, y0, x0+width, y0+height); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		ev.Title = fmt.Sprintf(" %s (enter=ok, esc=cancel) ", title)
		ev.Editable = true
		ev.Editor = singleLineEditor{}
		ev.BgColor = gocui.ColorBlack
		ev.FgColor = gocui.ColorWhite
	}
	if ev, err := g.View("edit"); err == nil {
		ev.Clear()
		fmt.Fprint(ev, current)
		ev.SetCursor(len(current), 0)
	}
	g.SetCurrentView("edit")
	return nil
}

func (a *App) closeEdit() error {
	if !a.editing {
		return nil
	}
	if v, err := a.g.View("edit"); err == nil {
		v.Clear()
		a.g.DeleteView("edit")
	}
	a.editing = false
	a.editTarget = ""
	a.setBuilderFocus()
	return nil
}

func (a *App) confirmEdit(g *gocui.Gui, v *gocui.View) error {
	if !a.editing {
		return nil
	}
	val := strings.TrimSpace(viewText(v))
	target := a.editTarget
	a.closeEdit()

	switch {
	case strings.HasPrefix(target, "field:"):
		key := strings.TrimPrefix(target, "field:")
		if val == "" {
			delete(a.fieldVals, key)
		} else {
			a.fieldVals[key] = val
		}
	case strings.HasPrefix(target, "header:"):
		id := strings.TrimPrefix(target, "header:")
		a.setHeaderValue(id, val)
		if id == "name" || id == "secret" {
			a.publishCredentialChange()
		}
	}

	a.renderBuilder()
	return nil
}

func (a *App) toggleSecret(*gocui.Gui, *gocui.View) error {
	if a.scr != screenBuilder || a.editing {
		return nil
	}
	a.showSecret = !a.showSecret
	a.renderBuilder()
	return nil
}

func (a *App) toggleRemember(*gocui.Gui, *gocui.View) error {
	if a.scr != screenBuilder || a.editing {
		return nil
	}
	a.remember = !a.remember
	if a.store != nil {
		if a.remember {
			a.publishCredentialChange()
		} else {
			// opting out must leave no residual copy
			if err := a.store.Forget(); err != nil {
				a.notice = fmt.Sprintf("failed to clear stored credentials: %v", err)
			}
		}
	}
	a.renderBuilder()
	a.renderFooter()
	return nil
}

// --- raw body ---

func (a *App) sampleJSON() string {
	if a.active.Sample == nil {
		return "{}"
	}
	b, err := json.MarshalIndent(a.active.Sample, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

func (a *App) resetToSample(*gocui.Gui, *gocui.View) error {
	if a.scr != screenBuilder || a.editing {
		return nil
	}
	a.bodyRaw = a.sampleJSON()
	a.notice = "body reset to sample"
	a.renderBuilder()
	a.renderFooter()
	return nil
}

func (a *App) formatRawBody(*gocui.Gui, *gocui.View) error {
	if a.scr != screenBuilder || a.editing {
		return nil
	}
	raw := strings.TrimSpace(a.bodyRaw)
	if raw == "" {
		return nil
	}
	var v any
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		a.notice = fmt.Sprintf("invalid json body: %v", err)
		a.renderFooter()
		return nil
	}
	if dec.More() {
		a.notice = "invalid json body: multiple json values"
		a.renderFooter()
		return nil
	}
	norm, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		a.notice = err.Error()
		a.renderFooter()
		return nil
	}
	a.bodyRaw = string(norm)
	a.notice = "body formatted"
	a.renderBuilder()
	a.renderFooter()
	return nil
}

func (a *App) editBodyInEditor(*gocui.Gui, *gocui.View) error {
	if a.scr != screenBuilder || a.editing {
		return nil
	}

	seed := strings.TrimSpace(a.bodyRaw)
	if seed == "" {
		seed = a.sampleJSON()
	}
	if !strings.HasSuffix(seed, "\n") {
		seed += "\n"
	}

	f, err := os.CreateTemp("", "galcon-body-*.json")
	if err != nil {
		return nil
	}
	defer f.Close()
	if _, err := f.WriteString(seed); err != nil {
		return nil
	}
	a.suspendEditorFile = f.Name()
	return gocui.ErrQuit
}

func (a *App) runExternalEditor(file string) error {
	editor := strings.TrimSpace(os.Getenv("GALCON_EDITOR"))
	if editor == "" {
		editor = strings.TrimSpace(os.Getenv("EDITOR"))
	}
	if editor == "" {
		editor = "vi"
	}

	args := strings.Fields(editor)
	cmd := exec.Command(args[0], append(args[1:], file)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return err
	}

	b, err := os.ReadFile(file)
	_ = os.Remove(file)
	if err != nil {
		return err
	}

	raw := strings.TrimSpace(string(b))
	if raw == "" {
		a.bodyRaw = ""
		return nil
	}

	var v any
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("invalid json body: %w", err)
	}
	if dec.More() {
		return fmt.Errorf("invalid json body: multiple json values")
	}
	norm, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	a.bodyRaw = string(norm)
	return nil
}

// --- dispatch ---

// buildEnvelope assembles the current request. The raw editor wins when it
// holds anything; otherwise the collected form document is the body.
func (a *App) buildEnvelope() (model.RequestEnvelope, error) {
	doc := map[string]any{}
	if !a.active.RawOnly() && strings.TrimSpace(a.bodyRaw) == "" {
		var err error
		doc, err = collector.Collect(a.active, a.fieldVals)
		if err != nil {
			return model.RequestEnvelope{}, err
		}
	}
	return a.dispatcher.BuildRequest(a.active, doc, a.bodyRaw, a.headers)
}

func (a *App) sendRequest(*gocui.Gui, *gocui.View) error {
	if a.scr != screenBuilder || a.editing {
		return nil
	}
	if a.dispatcher.Busy() {
		a.notice = "a request is already in flight"
		a.renderFooter()
		return nil
	}

	req, err := a.buildEnvelope()
	if err != nil {
		// malformed input and structural conflicts settle here, before
		// any network activity
		a.notice = err.Error()
		a.renderFooter()
		return nil
	}
	a.lastReq = req

	env, err := a.dispatcher.Send(context.Background(), req, a.remember, a.headers.Credentials())
	if err != nil {
		if errors.Is(err, dispatch.ErrBusy) {
			a.notice = err.Error()
			a.renderFooter()
			return nil
		}
		a.lastNetErr = err
		a.hasResult = true
		a.scr = screenResponse
		a.notice = ""
		return nil
	}

	a.lastEnv = env
	a.lastNetErr = nil
	a.hasResult = true
	a.scr = screenResponse
	a.notice = ""
	return nil
}

func (a *App) rerun(*gocui.Gui, *gocui.View) error {
	if a.scr != screenResponse || a.lastReq.URL == "" {
		return nil
	}
	if a.dispatcher.Busy() {
		a.notice = "a request is already in flight"
		a.renderFooter()
		return nil
	}
	env, err := a.dispatcher.Send(context.Background(), a.lastReq, a.remember, a.headers.Credentials())
	if err != nil && !errors.Is(err, dispatch.ErrBusy) {
		a.lastNetErr = err
	} else if err == nil {
		a.lastEnv = env
		a.lastNetErr = nil
	}
	a.renderResponse()
	return nil
}

// --- clipboard ---

func (a *App) copyShellCommand(*gocui.Gui, *gocui.View) error {
	if a.editing {
		return nil
	}
	req := a.lastReq
	if a.scr == screenBuilder {
		built, err := a.buildEnvelope()
		if err != nil {
			a.notice = err.Error()
			a.renderFooter()
			return nil
		}
		req = built
	}
	if req.URL == "" {
		return nil
	}
	if err := clipboard.WriteAll(shellcmd.Curl(req)); err != nil {
		a.notice = fmt.Sprintf("clipboard unavailable: %v", err)
	} else {
		a.notice = "copied as shell command"
	}
	a.renderFooter()
	return nil
}

func (a *App) copyResponse(*gocui.Gui, *gocui.View) error {
	if a.scr != screenResponse || !a.hasResult {
		return nil
	}
	var text string
	if a.lastNetErr != nil {
		text = a.lastNetErr.Error()
	} else if b, err := json.MarshalIndent(a.lastEnv.Data, "", "  "); err == nil {
		text = string(b)
	}
	if text == "" {
		return nil
	}
	if err := clipboard.WriteAll(text); err != nil {
		a.notice = fmt.Sprintf("clipboard unavailable: %v", err)
	} else {
		a.notice = "response copied"
	}
	a.renderFooter()
	return nil
}

func (a *App) scrollResponse(delta int) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		if a.scr != screenResponse || v == nil {
			return nil
		}
		ox, oy := v.Origin()
		if delta > 0 {
			v.SetOrigin(ox, oy+1)
		} else if oy > 0 {
			v.SetOrigin(ox, oy-1)
		}
		return nil
	}
}

// --- rendering ---

func (a *App) renderFooter() {
	v, err := a.g.View("footer")
	if err != nil {
		return
	}
	v.Clear()
	msg := a.notice
	if msg == "" {
		switch a.scr {
		case screenEndpoints:
			msg = "type: filter   enter: select   q: quit"
		case screenBuilder:
			msg = "tab: pane   enter: edit   e: json body   f: format   s: sample   ctrl+r: send   c: copy curl   m: remember   t: secret   esc: back"
		case screenResponse:
			msg = "up/down: scroll   r: rerun   y: copy response   c: copy curl   enter: endpoints   esc: back"
		}
	}
	if a.dispatcher.Busy() {
		msg = "sending..."
	}
	fmt.Fprint(v, msg)
}

func (a *App) renderFilter() {
	v, err := a.g.View("filter")
	if err != nil {
		return
	}
	v.Clear()
	fmt.Fprintf(v, "%s", a.filter)
}

func (a *App) renderEndpoints() {
	v, err := a.g.View("endpoints")
	if err != nil {
		return
	}
	v.Clear()

	endpoints := a.registry.All()
	for _, idx := range a.filtered {
		ep := endpoints[idx]
		cat := ""
		if ep.Category != "" {
			cat = colorDim + " [" + ep.Category + "]" + colorReset
		}
		raw := ""
		if ep.RawOnly() {
			raw = colorCyan + " (raw)" + colorReset
		}
		fmt.Fprintf(v, "%s %s  %s%s%s\n", colorizeMethod(ep.Method), padRight(ep.Label, 34), ep.Path, cat, raw)
	}
	v.SetCursor(0, a.selected)
}

func (a *App) renderBuilder() {
	a.renderFooter()

	if v, err := a.g.View("selected"); err == nil {
		v.Clear()
		fmt.Fprintf(v, "%s %s  -  %s\n", colorizeMethod(a.active.Method), a.active.Path, a.active.Label)
		if a.active.Help != "" {
			fmt.Fprintf(v, "%s%s%s\n", colorDim, a.active.Help, colorReset)
		}
	}

	if v, err := a.g.View("fields"); err == nil {
		v.Title = "Fields"
		v.Clear()
		for _, f := range a.active.Fields {
			label := f.Label
			if label == "" {
				label = f.Key
			}
			val := a.fieldVals[f.Key]
			if val == "" && f.Placeholder != "" {
				fmt.Fprintf(v, "%s = %s%s%s\n", label, colorDim, f.Placeholder, colorReset)
			} else {
				fmt.Fprintf(v, "%s = %s\n", label, val)
			}
		}
		if len(a.active.Fields) == 0 {
			fmt.Fprintln(v, "(none)")
		}
		v.SetCursor(0, a.fieldRow)
	}

	if v, err := a.g.View("headers"); err == nil {
		v.Title = "Headers"
		v.Clear()
		for _, h := range headerRows {
			val := a.headerValue(h.id)
			if h.id == "secret" && !a.showSecret {
				val = mask(val)
			}
			if h.id == "search-type" && val == "" && a.active.SearchType != "" {
				fmt.Fprintf(v, "%s = %s%s%s\n", h.label, colorDim, a.active.SearchType, colorReset)
				continue
			}
			fmt.Fprintf(v, "%s = %s\n", h.label, val)
		}
		v.SetCursor(0, a.hdrRow)
	}

	if v, err := a.g.View("body"); err == nil {
		v.Clear()
		remember := "off"
		if a.remember {
			remember = "on"
		}
		v.Title = fmt.Sprintf("Body (remember credentials: %s)", remember)
		raw := strings.TrimSpace(a.bodyRaw)
		switch {
		case raw != "":
			fmt.Fprintf(v, "%sraw json set (wins over form fields)%s\n", colorCyan, colorReset)
			fmt.Fprintln(v, firstLines(raw, 8))
		case a.active.RawOnly():
			fmt.Fprintln(v, "(raw body endpoint: press e to edit, s to reset to sample)")
		default:
			fmt.Fprintln(v, "(body built from form fields; press e for the json editor)")
		}
	}
}

func (a *App) renderResponse() {
	a.renderFooter()
	v, err := a.g.View("response")
	if err != nil {
		return
	}
	v.Clear()

	if !a.hasResult {
		fmt.Fprintln(v, "(no response yet)")
		return
	}

	if a.lastNetErr != nil {
		fmt.Fprintf(v, "%snetwork failure (no response received)%s\n\n", colorRed, colorReset)
		fmt.Fprintln(v, a.lastNetErr.Error())
		return
	}

	env := a.lastEnv
	fmt.Fprintf(v, "%s\n", colorizeStatus(env.StatusText))
	ok := colorRed + "error" + colorReset
	if env.OK {
		ok = colorGreen + "ok" + colorReset
	}
	fmt.Fprintf(v, "result: %s\n\n", ok)
	fmt.Fprintln(v, colorizeJSON(env.Data, 0))
}

func viewText(v *gocui.View) string {
	b := v.Buffer()
	// gocui includes a trailing newline
	return strings.TrimSuffix(b, "\n")
}

func firstLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n") + "\n" + colorDim + "..." + colorReset
}
