package bot

import "testing"

func TestParseCommand(t *testing.T) {
	p := NewCommandParser()

	cases := []struct {
		text      string
		wantCmd   string
		wantArgs  int
		isCommand bool
	}{
		{"!награда", "награда", 0, true},
		{"!Забрать", "забрать", 0, true},
		{".серия", "серия", 0, true},
		{"/start", "start", 0, true},
		{"!перевести @vasya 100", "перевести", 2, true},
		{"  !баланс  ", "баланс", 0, true},
		{"привет", "", 0, false},
		{"!", "", 0, false},
		{"", "", 0, false},
	}
	for _, c := range cases {
		cmd, args, ok := p.ParseCommand(c.text)
		if ok != c.isCommand {
			t.Errorf("ParseCommand(%q): isCommand = %v, ожидается %v", c.text, ok, c.isCommand)
			continue
		}
		if cmd != c.wantCmd {
			t.Errorf("ParseCommand(%q): cmd = %q, ожидается %q", c.text, cmd, c.wantCmd)
		}
		if len(args) != c.wantArgs {
			t.Errorf("ParseCommand(%q): %d аргументов, ожидается %d", c.text, len(args), c.wantArgs)
		}
	}
}
