package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestLoadDataCmdStreamsStages(t *testing.T) {
	sub := make(chan tea.Msg, LoadStages+1)
	load := func(stage func(string)) (*Dataset, error) {
		stage("read")
		stage("trends")
		stage("model")
		return testDataset(), nil
	}
	if msg := loadDataCmd(load, sub)(); msg != nil {
		t.Fatalf("loadDataCmd returned %T, want nil", msg)
	}

	var stages []string
	for {
		msg := waitForLoadMsg(sub)()
		if s, ok := msg.(StageMsg); ok {
			stages = append(stages, s.Name)
			continue
		}
		done, ok := msg.(DataLoadedMsg)
		if !ok {
			t.Fatalf("unexpected message %T", msg)
		}
		if done.Err != nil || done.Data == nil {
			t.Fatalf("DataLoadedMsg = %+v", done)
		}
		break
	}
	if strings.Join(stages, ",") != "read,trends,model" {
		t.Errorf("stages = %v", stages)
	}
}

func TestAppLoadingToForm(t *testing.T) {
	a := NewApp(nil)
	if !strings.Contains(a.View(), "0/3") {
		t.Errorf("loading view should show stage progress:\n%s", a.View())
	}

	m, _ := a.Update(StageMsg{Name: "Building trends"})
	a = m.(App)
	if a.stagesDone != 1 || !strings.Contains(a.View(), "Building trends") {
		t.Errorf("stage not shown: done=%d view=\n%s", a.stagesDone, a.View())
	}

	m, _ = a.Update(DataLoadedMsg{Data: testDataset()})
	a = m.(App)
	if a.phase != phaseForm || a.form == nil {
		t.Fatalf("phase = %v, form nil = %v; want form", a.phase, a.form == nil)
	}
	if a.vals.State != "Ohio" || a.vals.Education != EducationCollege {
		t.Errorf("form defaults = %+v", a.vals)
	}
}

func TestAppLoadFailure(t *testing.T) {
	a := NewApp(nil)
	m, _ := a.Update(DataLoadedMsg{Err: errors.New("no overall dataset")})
	a = m.(App)

	if a.phase != phaseFailed {
		t.Fatalf("phase = %v, want failed", a.phase)
	}
	if !strings.Contains(a.View(), "no overall dataset") {
		t.Errorf("failure view missing error:\n%s", a.View())
	}
	if _, cmd := a.Update(keyMsg("x")); !isQuit(cmd) {
		t.Error("any key should quit after a load failure")
	}
}

func TestAppResultKeys(t *testing.T) {
	a := NewApp(nil)
	a.data = testDataset()
	a.width = 80
	res, err := Estimate(FormValues{
		Childcare: "Daycare", State: "Ohio", GradYear: "2030",
		Education: EducationCollege, Type: "Private", Length: "4-year",
	}, a.data)
	if err != nil {
		t.Fatal(err)
	}
	a.result = res
	*a.vals = res.Values
	a.phase = phaseResult

	view := a.View()
	for _, want := range []string{"$46,300.00", "$54,000.00", "2034", "Daycare", "0.910"} {
		if !strings.Contains(view, want) {
			t.Errorf("result view missing %q:\n%s", want, view)
		}
	}
	if got, ok := a.Result(); !ok || got.Year != 2034 {
		t.Errorf("Result() = %+v, %v", got, ok)
	}

	m, _ := a.Update(keyMsg("enter"))
	again := m.(App)
	if again.phase != phaseForm || again.vals.State != "Ohio" {
		t.Errorf("enter should reopen the form with previous answers, phase=%v vals=%+v", again.phase, again.vals)
	}

	if _, cmd := a.Update(keyMsg("q")); !isQuit(cmd) {
		t.Error("q should quit from the result view")
	}
}
