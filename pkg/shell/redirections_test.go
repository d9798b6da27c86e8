package shell

import (
	"errors"
	"testing"
)

func TestParseRedirections(t *testing.T) {

	tests := []struct {
		name         string
		input        []Field
		expectedArgs []string
		expectedReds []RedirectionSpec
		expectedErr  error
	}{
		{
			name:         "no redirections",
			input:        bareFields("echo", "hi"),
			expectedArgs: []string{"echo", "hi"},
		},
		{
			name:         "stdout overwrite",
			input:        bareFields("echo", "hi", ">", "out.txt"),
			expectedArgs: []string{"echo", "hi"},
			expectedReds: []RedirectionSpec{{Operator: ">", Target: "out.txt"}},
		},
		{
			name:         "quoted operators are arguments",
			input:        []Field{{Value: "echo"}, {Value: ">", Quoted: true}, {Value: ">>", Quoted: true}, {Value: "notes.txt"}},
			expectedArgs: []string{"echo", ">", ">>", "notes.txt"},
		},
		{
			name:         "quoted target is still a target",
			input:        []Field{{Value: "echo"}, {Value: "2>"}, {Value: "my errors", Quoted: true}},
			expectedArgs: []string{"echo"},
			expectedReds: []RedirectionSpec{{Operator: "2>", Target: "my errors"}},
		},
		{
			name:         "several redirections",
			input:        bareFields("cmd", "<", "in", "a", "2>>", "err", "1>", "out"),
			expectedArgs: []string{"cmd", "a"},
			expectedReds: []RedirectionSpec{
				{Operator: "<", Target: "in"},
				{Operator: "2>>", Target: "err"},
				{Operator: "1>", Target: "out"},
			},
		},
		{
			name:        "missing target",
			input:       bareFields("echo", "hi", ">>"),
			expectedErr: ErrMissingRedirectDestination,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseRedirections(tt.input)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Errorf("Expected error: %v got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Expected no error got %v", err)
			}

			if !equalStringSlices(parsed.Args, tt.expectedArgs) {
				t.Errorf("args: expected %v got %v", tt.expectedArgs, parsed.Args)
			}

			if len(parsed.Redirections) != len(tt.expectedReds) {
				t.Fatalf("redirections: expected %v got %v", tt.expectedReds, parsed.Redirections)
			}
			for i := range parsed.Redirections {
				if parsed.Redirections[i] != tt.expectedReds[i] {
					t.Errorf("redirection %d: expected %+v got %+v", i, tt.expectedReds[i], parsed.Redirections[i])
				}
			}
		})
	}
}

func bareFields(values ...string) []Field {
	fields := make([]Field, len(values))
	for i, value := range values {
		fields[i] = Field{Value: value}
	}
	return fields
}

func TestRedirectionHandlers(t *testing.T) {
	handlers := defaultRedirectionHandlers()

	operators := []string{">", "1>", ">>", "1>>", "2>", "2>>", "<"}

	if len(operators) != len(redirectOperators) {
		t.Errorf("expected %d operators got %d", len(operators), len(redirectOperators))
	}

	for _, op := range operators {
		if !redirectOperators[op] {
			t.Errorf("%s is not recognised", op)
		}
		if findHandler(op, handlers) == nil {
			t.Errorf("no handler for %s", op)
		}
	}

	if findHandler("&>", handlers) != nil {
		t.Error("unexpected handler for &>")
	}

	if err := (&StdoutRedirectionHandler{}).Validate(RedirectionSpec{Operator: ">"}); !errors.Is(err, ErrMissingRedirectDestination) {
		t.Errorf("Expected %v got %v", ErrMissingRedirectDestination, err)
	}
}

func TestApplyRedirectionsUnsupported(t *testing.T) {
	var bindings IOBindings
	_, err := applyRedirections([]RedirectionSpec{{Operator: "&>", Target: "x"}}, &bindings, &DefaultFileOpener{}, defaultRedirectionHandlers())

	if !errors.Is(err, ErrUnsupportedRedirection) {
		t.Errorf("Expected %v got %v", ErrUnsupportedRedirection, err)
	}
}
