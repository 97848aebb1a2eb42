package sql

import (
	"fmt"
	"strings"
)

// TokenKind enumerates the token types produced by the lexer.
type TokenKind int

const (
	TokenEOF TokenKind = iota

	TokenIdent  // users, ism, yosh
	TokenNumber // 42, -7, 3.14
	TokenString // 'Ali'

	TokenComma     // ,
	TokenLParen    // (
	TokenRParen    // )
	TokenStar      // *
	TokenSemicolon // ;
	TokenEq        // =
	TokenNe        // != or <>
	TokenLt        // <
	TokenGt        // >
	TokenLe        // <=
	TokenGe        // >=

	// TokenSelect and below are keywords.
	TokenSelect
	TokenFrom
	TokenWhere
	TokenAnd
	TokenOr
	TokenOrder
	TokenBy
	TokenOrderBy
	TokenLimit
	TokenAsc
	TokenDesc
	TokenInsert
	TokenInto
	TokenValues
	TokenUpdate
	TokenSet
	TokenDelete
	TokenCreate
	TokenTable
	TokenCreateTable
	TokenInteger
	TokenText
	TokenReal
	TokenPrimary
	TokenKey
	TokenPrimaryKey
	TokenNot
	TokenNull
	TokenNotNull
	TokenUnique
)

var tokenNames = map[TokenKind]string{
	TokenEOF:         "EOF",
	TokenIdent:       "IDENT",
	TokenNumber:      "NUMBER",
	TokenString:      "STRING",
	TokenComma:       "','",
	TokenLParen:      "'('",
	TokenRParen:      "')'",
	TokenStar:        "'*'",
	TokenSemicolon:   "';'",
	TokenEq:          "'='",
	TokenNe:          "'!='",
	TokenLt:          "'<'",
	TokenGt:          "'>'",
	TokenLe:          "'<='",
	TokenGe:          "'>='",
	TokenSelect:      "SELECT",
	TokenFrom:        "FROM",
	TokenWhere:       "WHERE",
	TokenAnd:         "AND",
	TokenOr:          "OR",
	TokenOrder:       "ORDER",
	TokenBy:          "BY",
	TokenOrderBy:     "ORDER BY",
	TokenLimit:       "LIMIT",
	TokenAsc:         "ASC",
	TokenDesc:        "DESC",
	TokenInsert:      "INSERT",
	TokenInto:        "INTO",
	TokenValues:      "VALUES",
	TokenUpdate:      "UPDATE",
	TokenSet:         "SET",
	TokenDelete:      "DELETE",
	TokenCreate:      "CREATE",
	TokenTable:       "TABLE",
	TokenCreateTable: "CREATE TABLE",
	TokenInteger:     "INTEGER",
	TokenText:        "TEXT",
	TokenReal:        "REAL",
	TokenPrimary:     "PRIMARY",
	TokenKey:         "KEY",
	TokenPrimaryKey:  "PRIMARY KEY",
	TokenNot:         "NOT",
	TokenNull:        "NULL",
	TokenNotNull:     "NOT NULL",
	TokenUnique:      "UNIQUE",
}

// String returns a human-readable name for the token kind.
func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// IsKeyword reports whether k is a keyword kind.
func (k TokenKind) IsKeyword() bool {
	return k >= TokenSelect
}

// keywords maps upper-cased lexemes to keyword kinds. Both the Uzbek keyword
// set and its English counterpart are recognized.
var keywords = map[string]TokenKind{
	"TANLASH":      TokenSelect,
	"JADVALDAN":    TokenFrom,
	"QAYERDA":      TokenWhere,
	"VA":           TokenAnd,
	"YOKI":         TokenOr,
	"TARTIBLA":     TokenOrderBy,
	"CHEGARA":      TokenLimit,
	"OSHISH":       TokenAsc,
	"KAMAYISH":     TokenDesc,
	"QOSH":         TokenInsert,
	"QO'SH":        TokenInsert,
	"ICHIGA":       TokenInto,
	"QIYMATLAR":    TokenValues,
	"YANGILASH":    TokenUpdate,
	"BELGILASH":    TokenSet,
	"OCHIR":        TokenDelete,
	"O'CHIR":       TokenDelete,
	"JADVAL_YARAT": TokenCreateTable,
	"BUTUN_SON":    TokenInteger,
	"MATN":         TokenText,
	"HAQIQIY":      TokenReal,
	"ASOSIY_KALIT": TokenPrimaryKey,
	"BOSH_EMAS":    TokenNotNull,
	"YAGONA":       TokenUnique,

	"SELECT":     TokenSelect,
	"FROM":       TokenFrom,
	"WHERE":      TokenWhere,
	"AND":        TokenAnd,
	"OR":         TokenOr,
	"ORDER":      TokenOrder,
	"BY":         TokenBy,
	"LIMIT":      TokenLimit,
	"ASC":        TokenAsc,
	"ASCENDING":  TokenAsc,
	"DESC":       TokenDesc,
	"DESCENDING": TokenDesc,
	"INSERT":     TokenInsert,
	"INTO":       TokenInto,
	"VALUES":     TokenValues,
	"UPDATE":     TokenUpdate,
	"SET":        TokenSet,
	"DELETE":     TokenDelete,
	"CREATE":     TokenCreate,
	"TABLE":      TokenTable,
	"INTEGER":    TokenInteger,
	"INT":        TokenInteger,
	"TEXT":       TokenText,
	"REAL":       TokenReal,
	"PRIMARY":    TokenPrimary,
	"KEY":        TokenKey,
	"PRIMARYKEY": TokenPrimaryKey,
	"NOT":        TokenNot,
	"NULL":       TokenNull,
	"NOTNULL":    TokenNotNull,
	"UNIQUE":     TokenUnique,
}

// lookupKeyword returns the keyword kind for an identifier-shaped lexeme,
// or TokenIdent when it is not a keyword.
func lookupKeyword(lexeme string) TokenKind {
	if kind, ok := keywords[strings.ToUpper(lexeme)]; ok {
		return kind
	}
	return TokenIdent
}

// Token is a single lexical unit. Pos is the byte offset of the token in the
// query text.
type Token struct {
	Kind TokenKind
	Text string
	Pos  int
}

func (t Token) String() string {
	if t.Text == "" {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
}
