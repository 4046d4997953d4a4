package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Symbol identifies a token: an uppercase code plus the number of decimal
// digits every quantity of that token carries.
type Symbol struct {
	Code      string
	Precision uint8
}

const maxPrecision = 18

func (s Symbol) Valid() bool {
	if len(s.Code) < 1 || len(s.Code) > 7 || s.Precision > maxPrecision {
		return false
	}
	for _, c := range s.Code {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

func (s Symbol) String() string {
	return fmt.Sprintf("%d,%s", s.Precision, s.Code)
}

// Asset is a fixed-point quantity: Amount is expressed in the token's
// smallest unit (10^-Precision).
type Asset struct {
	Amount int64
	Symbol Symbol
}

func NewAsset(amount int64, sym Symbol) Asset {
	return Asset{Amount: amount, Symbol: sym}
}

// ParseAsset parses the canonical "123.4567 SYM" form. The number of
// fractional digits written determines the precision, so "200 TLM" and
// "200.0000 TLM" are different symbols.
func ParseAsset(s string) (Asset, error) {
	parts := strings.SplitN(strings.TrimSpace(s), " ", 2)
	if len(parts) != 2 {
		return Asset{}, errors.New("asset must be of form '1.0000 SYM'")
	}

	amountStr := parts[0]
	code := strings.TrimSpace(parts[1])

	negative := false
	if strings.HasPrefix(amountStr, "-") {
		negative = true
		amountStr = amountStr[1:]
	}

	intPart := amountStr
	fracPart := ""
	if dot := strings.IndexByte(amountStr, '.'); dot >= 0 {
		intPart = amountStr[:dot]
		fracPart = amountStr[dot+1:]
		if fracPart == "" {
			return Asset{}, errors.New("asset has trailing decimal point")
		}
	}
	if intPart == "" {
		intPart = "0"
	}
	if len(fracPart) > maxPrecision {
		return Asset{}, errors.New("asset precision too high")
	}

	amount, err := strconv.ParseInt(intPart+fracPart, 10, 64)
	if err != nil {
		return Asset{}, fmt.Errorf("cannot parse asset amount: %s", err.Error())
	}
	if negative {
		amount = -amount
	}

	a := Asset{
		Amount: amount,
		Symbol: Symbol{Code: code, Precision: uint8(len(fracPart))},
	}
	if !a.Symbol.Valid() {
		return Asset{}, errors.New("invalid asset symbol")
	}
	return a, nil
}

func (a Asset) String() string {
	amount := a.Amount
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	s := strconv.FormatInt(amount, 10)
	p := int(a.Symbol.Precision)
	if len(s) <= p {
		s = strings.Repeat("0", p-len(s)+1) + s
	}
	if p > 0 {
		s = s[:len(s)-p] + "." + s[len(s)-p:]
	}
	return sign + s + " " + a.Symbol.Code
}

func (a Asset) Valid() bool {
	return a.Symbol.Valid()
}

func (a Asset) IsNegative() bool { return a.Amount < 0 }
func (a Asset) IsPositive() bool { return a.Amount > 0 }

// SameSymbol reports whether both code and precision match.
func (a Asset) SameSymbol(b Asset) bool {
	return a.Symbol == b.Symbol
}

// Add assumes both assets carry the same symbol; callers validate first.
func (a Asset) Add(b Asset) Asset {
	return Asset{Amount: a.Amount + b.Amount, Symbol: a.Symbol}
}

func (a Asset) Sub(b Asset) Asset {
	return Asset{Amount: a.Amount - b.Amount, Symbol: a.Symbol}
}

func (a Asset) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(a.String())), nil
}

func (a *Asset) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return err
	}
	parsed, err := ParseAsset(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
