package lang

import (
	"encoding/json"
	"strconv"
	"strings"
)

// OpCode names a stack-machine instruction.
type OpCode int

const (
	OpNum      OpCode = iota // Num
	OpWord                   // Word
	OpList                   // List
	OpVar                    // Var
	OpAdd                    // Add
	OpSub                    // Sub
	OpNeg                    // Neg
	OpSum                    // Sum
	OpDice                   // D
	OpRange                  // Range
	OpLabel                  // Label
	OpHighest                // H
	OpLowest                 // L
	OpPrevious               // P
	OpFudge                  // Fudge
	OpEqual                  // Equal
	OpLess                   // Less
	OpGreater                // Greater
	OpAppend                 // Append
	OpCount                  // Count
	OpReplace                // Replace
	OpAs                     // As
	OpPush                   // Push
	OpPop                    // Pop
	OpHighestN               // HighestN
	OpLowestN                // LowestN
)

const opCodeCount = OpLowestN + 1

// Op is one instruction. Num and List carry their operand in N, Word in Word.
type Op struct {
	Word string
	Code OpCode
	N    int
}

// Code returns an operand-free instruction.
func Code(c OpCode) Op { return Op{Code: c} }

// PushNum returns an instruction pushing Num(n).
func PushNum(n int) Op { return Op{Code: OpNum, N: n} }

// PushWord returns an instruction pushing Word(s).
func PushWord(s string) Op { return Op{Code: OpWord, Word: s} }

// MakeList returns an instruction collecting the top n values into a list.
func MakeList(n int) Op { return Op{Code: OpList, N: n} }

func (op Op) String() string {
	switch op.Code {
	case OpNum, OpList:
		return op.Code.String() + "(" + strconv.Itoa(op.N) + ")"
	case OpWord:
		return op.Code.String() + "(" + strconv.Quote(op.Word) + ")"
	default:
		return op.Code.String()
	}
}

// Program is a linear instruction sequence produced by [Parse].
// A Program is never modified after it is produced.
type Program []Op

func (p Program) String() string {
	var sb strings.Builder

	sb.WriteByte('[')

	for i, op := range p {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(op.String())
	}

	sb.WriteByte(']')

	return sb.String()
}

// Strings returns the display form of each instruction.
func (p Program) Strings() []string {
	out := make([]string, len(p))
	for i, op := range p {
		out[i] = op.String()
	}

	return out
}

// MarshalJSON implements json.Marshaler.
func (p Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Strings())
}

// MarshalYAML implements the go-yaml InterfaceMarshaler.
func (p Program) MarshalYAML() (any, error) {
	return p.Strings(), nil
}
