package config

import "testing"

// FuzzRCParser checks that the rc parser never panics and never returns a
// nil config without an error.
func FuzzRCParser(f *testing.F) {
	f.Add([]byte("canvas_width 800\ncanvas_height 600\ntool brush"))
	f.Add([]byte("# comment\npalette red, #00ff00, 00f"))
	f.Add([]byte(""))
	f.Add([]byte("\n\n\n"))
	f.Add([]byte("width"))
	f.Add([]byte("width -999999999999999999999"))
	f.Add([]byte("color #zzzzzz"))
	f.Add([]byte("save_format \x00"))

	f.Fuzz(func(t *testing.T, data []byte) {
		cfg, err := NewRCParser().Parse(data)
		if err == nil && cfg == nil {
			t.Error("Parse returned nil config with nil error")
		}
	})
}

// FuzzLuaParser runs arbitrary scripts through the Lua parser.
func FuzzLuaParser(f *testing.F) {
	f.Add([]byte(`minipaint.config = { canvas_width = 640, tool = "star" }`))
	f.Add([]byte(`minipaint.palette = { "red", {1, 2, 3} }`))
	f.Add([]byte(""))
	f.Add([]byte("minipaint.config = {"))
	f.Add([]byte("minipaint = nil"))
	f.Add([]byte(`minipaint.config = { width = function() end }`))

	f.Fuzz(func(t *testing.T, data []byte) {
		p, err := NewLuaConfigParser()
		if err != nil {
			t.Fatal(err)
		}
		defer p.Close()

		cfg, err := p.Parse(data)
		if err == nil && cfg == nil {
			t.Error("Parse returned nil config with nil error")
		}
	})
}
