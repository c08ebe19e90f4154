package naming

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuffix_BoundaryTable(t *testing.T) {
	tests := []struct {
		index    int
		expected string
	}{
		{0, "0"},
		{10, "A"},
		{11, "B"},
		{62, "_"},
		{63, "10"},
		{64, "11"},
		{250046, "___"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.index), func(t *testing.T) {
			assert.Equal(t, tt.expected, Suffix(tt.index))
			assert.Equal(t, "o"+tt.expected, Name(tt.index))
		})
	}
}

func TestSuffix_Injective(t *testing.T) {
	seen := make(map[string]int)

	for i := range 2 * Base * Base {
		s := Suffix(i)
		if prev, ok := seen[s]; ok {
			t.Fatalf("suffix %q produced for %d and %d", s, prev, i)
		}

		seen[s] = i
	}
}

func TestSuffix_LengthGrowsMonotonically(t *testing.T) {
	prev := 0

	for i := range Base*Base + 10 {
		l := len(Suffix(i))
		require.GreaterOrEqual(t, l, prev, "index %d", i)

		prev = l
	}

	assert.Len(t, Suffix(Base-1), 1)
	assert.Len(t, Suffix(Base), 2)
	assert.Len(t, Suffix(Base*Base-1), 2)
	assert.Len(t, Suffix(Base*Base), 3)
}

func TestSuffix_LargestIndex(t *testing.T) {
	s := Suffix(int(^uint(0) >> 1))

	assert.Len(t, s, maxDigits)
	assert.False(t, strings.HasPrefix(s, "0"))
}

func TestSuffix_NegativePanics(t *testing.T) {
	assert.Panics(t, func() { Suffix(-1) })
}

func TestName_NeverStartsWithDigit(t *testing.T) {
	for i := range 1000 {
		assert.NotContains(t, "0123456789", Name(i)[:1])
	}
}

func TestName_PrefixSymbolInsideSuffix(t *testing.T) {
	assert.Equal(t, "oo", Name(strings.Index(Alphabet, Prefix)))

	seen := make(map[string]int)
	for i := range 5000 {
		n := Name(i)
		require.True(t, strings.HasPrefix(n, Prefix))
		assert.Equal(t, Suffix(i), n[len(Prefix):])

		prev, dup := seen[n]
		require.False(t, dup, "%s for %d and %d", n, prev, i)
		seen[n] = i
	}

	for _, word := range []string{"h", "hydrator", "null", "true", "false", "nan", "inf"} {
		assert.False(t, strings.HasPrefix(word, Prefix), word)
	}
}

func ExampleName() {
	fmt.Println(Name(0), Name(61), Name(62), Name(63))
	// Output: o0 oz o_ o10
}
