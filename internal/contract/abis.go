package contract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"golang.org/x/crypto/sha3"
)

// BuiltinKind describes a contract whose ABI is embedded in the binary.
// New built-ins register themselves via init() in their own file.
type BuiltinKind struct {
	ID          string  // machine key, e.g. "factory"
	Name        string  // contract name as in the artifact, e.g. "FundraiserFactory"
	Description string  // one-line summary
	ABI         abi.ABI // parsed ABI, ready to bind
}

var builtinRegistry = map[string]BuiltinKind{}

// RegisterBuiltin adds a built-in ABI to the global registry.
// Call this from init() in the file that defines the ABI.
func RegisterBuiltin(b BuiltinKind) {
	builtinRegistry[b.ID] = b
}

// GetBuiltin returns a built-in by ID. ok is false if not found.
func GetBuiltin(id string) (BuiltinKind, bool) {
	b, ok := builtinRegistry[id]
	return b, ok
}

// AllBuiltins returns all registered built-ins sorted by ID.
func AllBuiltins() []BuiltinKind {
	out := make([]BuiltinKind, 0, len(builtinRegistry))
	for _, b := range builtinRegistry {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// mustParseABI parses an embedded ABI and panics on malformed JSON.
func mustParseABI(id, raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("contract: built-in ABI %q: %v", id, err))
	}
	return parsed
}

// Selector returns the 4-byte function selector for a canonical signature
// such as "createFundraiser(string,string,string,string,address)".
func Selector(signature string) [4]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(signature))
	var sel [4]byte
	copy(sel[:], h.Sum(nil)[:4])
	return sel
}

// Method is one callable function of a bound ABI, as shown to users.
type Method struct {
	Name     string
	Sig      string
	Selector [4]byte
	ReadOnly bool
}

// Methods lists the functions of parsed sorted by name.
func Methods(parsed abi.ABI) []Method {
	out := make([]Method, 0, len(parsed.Methods))
	for _, m := range parsed.Methods {
		out = append(out, Method{
			Name:     m.Name,
			Sig:      m.Sig,
			Selector: Selector(m.Sig),
			ReadOnly: m.IsConstant(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
