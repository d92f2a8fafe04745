package processor

// Numerals maps each English number word to the digit at its index.
// Matching walks it in order, so "zero" is tried before "one" and so on.
var Numerals = [10]string{
	"zero",
	"one",
	"two",
	"three",
	"four",
	"five",
	"six",
	"seven",
	"eight",
	"nine",
}
