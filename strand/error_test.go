package strand

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	se := &Error{Strand: Info{Name: "prod3"}, Err: errors.New("something went wrong")}
	assert.Equal(t, `strand "prod3" failed: something went wrong`, se.Error())
	assert.Equal(t, se.Error(), fmt.Sprintf("%v", se))
}

func TestError_FormatVerbose(t *testing.T) {
	se := &Error{Strand: Info{Name: "cons"}, Err: errors.New("inner")}
	assert.Equal(t, `strand "cons" failed: inner`, fmt.Sprintf("%+v", se))
}

func TestNameOfAndCauseOf(t *testing.T) {
	inner := errors.New("inner")
	se := &Error{Strand: Info{Name: "cons"}, Err: inner}

	tests := []struct {
		name      string
		err       error
		wantName  string
		wantFound bool
		wantCause error
	}{
		{name: "nil", err: nil, wantCause: nil},
		{name: "plain", err: inner, wantCause: inner},
		{name: "strand error", err: se, wantName: "cons", wantFound: true, wantCause: inner},
		{name: "wrapped", err: fmt.Errorf("run: %w", se), wantName: "cons", wantFound: true, wantCause: inner},
		{name: "joined", err: errors.Join(errors.New("other"), se), wantName: "cons", wantFound: true, wantCause: inner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, found := NameOf(tt.err)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantCause, CauseOf(tt.err))
		})
	}
}

func TestPanicError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	assert.Equal(t, inner, (&PanicError{Value: inner}).Unwrap())
	assert.Nil(t, (&PanicError{Value: "text"}).Unwrap())
	assert.Contains(t, (&PanicError{Value: "text", Stack: "trace"}).Error(), "panic: text")
}
