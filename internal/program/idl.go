package program

import (
	"crypto/sha256"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/gagliardetto/solana-go"
)

// Names used by the portal program
const (
	InstructionStartStuffOff = "startStuffOff"
	InstructionAddGif        = "addGif"
	AccountBaseAccount       = "BaseAccount"
)

// baseAccountLayout is the account layout the borsh codec in this package understands
const baseAccountLayout = "u64,vec<ItemStruct{string,publicKey}>"

//go:embed idl.json
var defaultIDL []byte

// IDL is the static interface description of the remote program
type IDL struct {
	Version      string           `json:"version"`
	Name         string           `json:"name"`
	Instructions []IDLInstruction `json:"instructions"`
	Accounts     []IDLTypeDef     `json:"accounts"`
	Types        []IDLTypeDef     `json:"types"`
	Metadata     struct {
		Address string `json:"address"`
	} `json:"metadata"`
}

// IDLInstruction describes one callable method
type IDLInstruction struct {
	Name     string          `json:"name"`
	Accounts []IDLAccountRef `json:"accounts"`
	Args     []IDLField      `json:"args"`
}

// IDLAccountRef is an account an instruction expects, in order
type IDLAccountRef struct {
	Name     string `json:"name"`
	IsMut    bool   `json:"isMut"`
	IsSigner bool   `json:"isSigner"`
}

// IDLField is a named, typed field or argument
type IDLField struct {
	Name string  `json:"name"`
	Type IDLType `json:"type"`
}

// IDLTypeDef is a named struct definition
type IDLTypeDef struct {
	Name string `json:"name"`
	Type struct {
		Kind   string     `json:"kind"`
		Fields []IDLField `json:"fields"`
	} `json:"type"`
}

// IDLType is either a primitive ("u64", "string", "publicKey"),
// a vector ({"vec": T}) or a reference to a defined type ({"defined": "Name"}).
type IDLType struct {
	Primitive string
	Vec       *IDLType
	Defined   string
}

// UnmarshalJSON implements json.Unmarshaler
func (t *IDLType) UnmarshalJSON(data []byte) error {
	var primitive string
	if err := json.Unmarshal(data, &primitive); err == nil {
		t.Primitive = primitive
		return nil
	}

	var complex struct {
		Vec     *IDLType `json:"vec"`
		Defined string   `json:"defined"`
	}
	if err := json.Unmarshal(data, &complex); err != nil {
		return fmt.Errorf("invalid idl type %s: %w", data, err)
	}
	if complex.Vec == nil && complex.Defined == "" {
		return fmt.Errorf("unsupported idl type %s", data)
	}
	t.Vec = complex.Vec
	t.Defined = complex.Defined
	return nil
}

// DefaultIDL returns the interface description embedded in the binary
func DefaultIDL() (*IDL, error) {
	return ParseIDL(defaultIDL)
}

// ParseIDL parses and validates an interface description
func ParseIDL(data []byte) (*IDL, error) {
	var idl IDL
	if err := json.Unmarshal(data, &idl); err != nil {
		return nil, fmt.Errorf("failed to unmarshal idl: %w", err)
	}
	if err := idl.validate(); err != nil {
		return nil, err
	}
	return &idl, nil
}

// Address returns the program address declared in the IDL metadata
func (idl *IDL) Address() (solana.PublicKey, error) {
	if idl.Metadata.Address == "" {
		return solana.PublicKey{}, errors.New("idl has no program address")
	}
	address, err := solana.PublicKeyFromBase58(idl.Metadata.Address)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid program address: %w", err)
	}
	return address, nil
}

// Instruction returns the instruction definition by name
func (idl *IDL) Instruction(name string) (*IDLInstruction, error) {
	for i := range idl.Instructions {
		if idl.Instructions[i].Name == name {
			return &idl.Instructions[i], nil
		}
	}
	return nil, fmt.Errorf("instruction %q not in idl", name)
}

// validate checks that the IDL declares everything the client calls
// and that the account layout matches the codec.
func (idl *IDL) validate() error {
	for _, name := range []string{InstructionStartStuffOff, InstructionAddGif} {
		if _, err := idl.Instruction(name); err != nil {
			return err
		}
	}

	layout, err := idl.layout(AccountBaseAccount)
	if err != nil {
		return err
	}
	if layout != baseAccountLayout {
		return fmt.Errorf("unsupported %s layout %q", AccountBaseAccount, layout)
	}
	return nil
}

// layout flattens a struct definition into a comparable string
func (idl *IDL) layout(name string) (string, error) {
	def := idl.typeDef(name)
	if def == nil {
		return "", fmt.Errorf("type %q not in idl", name)
	}

	parts := make([]string, 0, len(def.Type.Fields))
	for _, field := range def.Type.Fields {
		s, err := idl.typeString(field.Type)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ","), nil
}

func (idl *IDL) typeString(t IDLType) (string, error) {
	switch {
	case t.Primitive != "":
		return t.Primitive, nil
	case t.Vec != nil:
		inner, err := idl.typeString(*t.Vec)
		if err != nil {
			return "", err
		}
		return "vec<" + inner + ">", nil
	default:
		inner, err := idl.layout(t.Defined)
		if err != nil {
			return "", err
		}
		return t.Defined + "{" + inner + "}", nil
	}
}

func (idl *IDL) typeDef(name string) *IDLTypeDef {
	for _, defs := range [][]IDLTypeDef{idl.Accounts, idl.Types} {
		for i := range defs {
			if defs[i].Name == name {
				return &defs[i]
			}
		}
	}
	return nil
}

// InstructionDiscriminator is the Anchor sighash of an instruction:
// the first 8 bytes of sha256("global:<snake_case_name>").
func InstructionDiscriminator(name string) [8]byte {
	return sighash("global:" + toSnakeCase(name))
}

// AccountDiscriminator is the Anchor prefix of account data:
// the first 8 bytes of sha256("account:<Name>").
func AccountDiscriminator(name string) [8]byte {
	return sighash("account:" + name)
}

func sighash(preimage string) [8]byte {
	sum := sha256.Sum256([]byte(preimage))
	var out [8]byte
	copy(out[:], sum[:8])
	return out
}

func toSnakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
