package shared

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
)

func TestStripBOM(t *testing.T) {
	tc := []struct {
		name string
		in   []byte
		want string
	}{
		{name: "with BOM", in: append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"a":1}`)...), want: `{"a":1}`},
		{name: "without BOM", in: []byte(`[1,2]`), want: `[1,2]`},
		{name: "empty", in: []byte{}, want: ""},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(StripBOM(tt.in)); got != tt.want {
				t.Errorf("StripBOM() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarshalJSON(t *testing.T) {
	data := map[string]string{"2": "테스트 & <Test>"}

	t.Run("compact", func(t *testing.T) {
		out, err := MarshalJSON(data, false)
		if err != nil {
			t.Fatalf("MarshalJSON failed: %v", err)
		}
		if want := `{"2":"테스트 & <Test>"}`; string(out) != want {
			t.Errorf("MarshalJSON() = %s, want %s", out, want)
		}
	})

	t.Run("pretty", func(t *testing.T) {
		out, err := MarshalJSON(data, true)
		if err != nil {
			t.Fatalf("MarshalJSON failed: %v", err)
		}
		if want := "{\n    \"2\": \"테스트 & <Test>\"\n}\n"; string(out) != want {
			t.Errorf("MarshalJSON() = %q, want %q", out, want)
		}
	})
}

func TestIndentJSON(t *testing.T) {
	t.Run("keeps fields and order", func(t *testing.T) {
		out, err := IndentJSON([]byte(`[{"title":1,"name":"ア","extra":true,"dlc":null,"bpm":1.50}]`))
		if err != nil {
			t.Fatalf("IndentJSON failed: %v", err)
		}

		want := "[\n    {\n        \"title\": 1,\n        \"name\": \"ア\",\n        \"extra\": true,\n        \"dlc\": null,\n        \"bpm\": 1.50\n    }\n]\n"
		if string(out) != want {
			t.Errorf("IndentJSON() = %q, want %q", out, want)
		}
	})

	t.Run("unescapes text", func(t *testing.T) {
		out, err := IndentJSON([]byte(`[{"name":"\uD14C\uC2A4\uD2B8 \u0026 \u30a2","nested":{"k":["\u00e9"]}}]`))
		if err != nil {
			t.Fatalf("IndentJSON failed: %v", err)
		}

		for _, want := range []string{`"name": "테스트 & ア"`, `"é"`} {
			if !bytes.Contains(out, []byte(want)) {
				t.Errorf("IndentJSON() = %s, want literal %s", out, want)
			}
		}
		if bytes.Contains(out, []byte(`\u`)) {
			t.Errorf("escapes should be decoded, got %s", out)
		}
	})

	t.Run("empty containers", func(t *testing.T) {
		out, err := IndentJSON([]byte(`{"a":[],"b":{}}`))
		if err != nil {
			t.Fatalf("IndentJSON failed: %v", err)
		}
		if want := "{\n    \"a\": [],\n    \"b\": {}\n}\n"; string(out) != want {
			t.Errorf("IndentJSON() = %q, want %q", out, want)
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		for _, bad := range []string{`[{`, `[1] [2]`, ``, `{"a" 1}`} {
			if _, err := IndentJSON([]byte(bad)); err == nil {
				t.Errorf("expected error for %q", bad)
			}
		}
	})
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Error("expected distinct ids")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("GenerateID() returned invalid uuid %q: %v", a, err)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := WithLogger(NewLogger(&buf), "component", "test")
	logger.Info("hello")

	if !bytes.Contains(buf.Bytes(), []byte("component=test")) {
		t.Errorf("expected child logger fields in output, got %q", buf.String())
	}
}
