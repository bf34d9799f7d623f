package parser

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/tuannm99/tinysql/internal/sql/lexer"
)

// Options tunes how the parser treats input it does not recognize.
type Options struct {
	// Strict turns text after the last recognized statement into an error.
	// By default parsing just stops there.
	Strict bool
}

// Parse parses a whole script into statements in source order.
func Parse(sql string) ([]Statement, error) {
	return ParseWithOptions(sql, Options{})
}

// ParseWithOptions is Parse with explicit options.
// Any grammar violation rejects the whole script.
func ParseWithOptions(sql string, opts Options) ([]Statement, error) {
	p := &Parser{
		tokens: lexer.Tokenize(sql),
		opts:   opts,
	}
	return p.parseScript()
}

// Parser is a recursive-descent parser over a token slice with a single
// forward cursor. Whitespace tokens are skipped before every read.
type Parser struct {
	tokens []lexer.Token
	cursor int
	opts   Options
}

func (p *Parser) parseScript() ([]Statement, error) {
	var out []Statement
	for {
		p.skipSpace()
		if p.eof() {
			return out, nil
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt == nil {
			if p.opts.Strict {
				return nil, syntaxErr("unrecognized statement starting at %q (token %d)", p.current(), p.cursor)
			}
			slog.Debug("parser: stop at unrecognized token", "token", p.current(), "pos", p.cursor)
			return out, nil
		}
		out = append(out, stmt)
	}
}

// parseStatement dispatches on the leading keyword.
// It returns (nil, nil) when the keyword starts no known statement.
func (p *Parser) parseStatement() (Statement, error) {
	switch strings.ToUpper(p.current()) {
	case "CREATE":
		return p.parseCreateTable()
	case "DROP":
		return p.parseDropTable()
	case "TRUNCATE":
		return p.parseTruncateTable()
	case "ALTER":
		return p.parseAlterTable()
	case "INSERT":
		return p.parseInsert()
	case "SELECT":
		return p.parseSelect()
	case "SHOW":
		return p.parseShowTables()
	default:
		return nil, nil
	}
}

// CREATE TABLE name ( col type [, col type ...] ) ;
func (p *Parser) parseCreateTable() (Statement, error) {
	if err := p.expectAll("CREATE", "TABLE"); err != nil {
		return nil, err
	}
	name, err := p.ident("table name")
	if err != nil {
		return nil, err
	}
	if err := p.expect("("); err != nil {
		return nil, err
	}
	cols, err := p.parseColumnDefs()
	if err != nil {
		return nil, fmt.Errorf("CREATE TABLE %s: %w", name, err)
	}
	if err := p.expectAll(")", ";"); err != nil {
		return nil, err
	}

	slog.Debug("parser: create table", "table", name, "columns", len(cols))
	return &CreateTableStmt{TableName: name, Columns: cols}, nil
}

// DROP TABLE name ;
func (p *Parser) parseDropTable() (Statement, error) {
	name, err := p.parseTableOnly("DROP")
	if err != nil {
		return nil, err
	}
	slog.Debug("parser: drop table", "table", name)
	return &DropTableStmt{TableName: name}, nil
}

// TRUNCATE TABLE name ;
func (p *Parser) parseTruncateTable() (Statement, error) {
	name, err := p.parseTableOnly("TRUNCATE")
	if err != nil {
		return nil, err
	}
	slog.Debug("parser: truncate table", "table", name)
	return &TruncateTableStmt{TableName: name}, nil
}

func (p *Parser) parseTableOnly(verb string) (string, error) {
	if err := p.expectAll(verb, "TABLE"); err != nil {
		return "", err
	}
	name, err := p.ident("table name")
	if err != nil {
		return "", err
	}
	if err := p.expect(";"); err != nil {
		return "", err
	}
	return name, nil
}

// ALTER TABLE name ADD col type [, col type ...] ;
func (p *Parser) parseAlterTable() (Statement, error) {
	if err := p.expectAll("ALTER", "TABLE"); err != nil {
		return nil, err
	}
	name, err := p.ident("table name")
	if err != nil {
		return nil, err
	}
	if err := p.expect("ADD"); err != nil {
		return nil, err
	}
	cols, err := p.parseColumnDefs()
	if err != nil {
		return nil, fmt.Errorf("ALTER TABLE %s: %w", name, err)
	}
	if err := p.expect(";"); err != nil {
		return nil, err
	}

	slog.Debug("parser: alter table", "table", name, "columns", len(cols))
	return &AlterTableStmt{TableName: name, Columns: cols}, nil
}

// INSERT INTO name ( col, ... ) VALUES ( val, ... ) ;
func (p *Parser) parseInsert() (Statement, error) {
	if err := p.expectAll("INSERT", "INTO"); err != nil {
		return nil, err
	}
	name, err := p.ident("table name")
	if err != nil {
		return nil, err
	}
	if err := p.expect("("); err != nil {
		return nil, err
	}
	cols, err := p.identList()
	if err != nil {
		return nil, err
	}
	if err := p.expectAll(")", "VALUES", "("); err != nil {
		return nil, err
	}
	vals, err := p.valueList()
	if err != nil {
		return nil, err
	}
	if err := p.expectAll(")", ";"); err != nil {
		return nil, err
	}

	if len(cols) != len(vals) {
		return nil, syntaxErr("INSERT INTO %s: %d columns but %d values", name, len(cols), len(vals))
	}

	slog.Debug("parser: insert", "table", name, "columns", len(cols))
	return &InsertStmt{TableName: name, Columns: cols, Values: vals}, nil
}

// SELECT [DISTINCT] col, ... | * FROM name ;
func (p *Parser) parseSelect() (Statement, error) {
	if err := p.expect("SELECT"); err != nil {
		return nil, err
	}

	distinct := false
	p.skipSpace()
	if p.accept("DISTINCT") {
		p.advance()
		distinct = true
	}

	var cols []string
	for {
		p.skipSpace()
		if p.accept(Wildcard) {
			p.advance()
			cols = append(cols, Wildcard)
		} else {
			c, err := p.ident("column name")
			if err != nil {
				return nil, err
			}
			cols = append(cols, c)
		}

		p.skipSpace()
		if !p.accept(",") {
			break
		}
		p.advance()
	}

	if err := p.expect("FROM"); err != nil {
		return nil, err
	}
	name, err := p.ident("table name")
	if err != nil {
		return nil, err
	}
	if err := p.expect(";"); err != nil {
		return nil, err
	}

	slog.Debug("parser: select", "table", name, "distinct", distinct, "columns", len(cols))
	return &SelectStmt{TableName: name, Distinct: distinct, Columns: cols}, nil
}

// SHOW TABLES ;
func (p *Parser) parseShowTables() (Statement, error) {
	if err := p.expectAll("SHOW", "TABLES", ";"); err != nil {
		return nil, err
	}
	slog.Debug("parser: show tables")
	return &ShowTablesStmt{}, nil
}

// parseColumnDefs reads "col type [, col type ...]".
func (p *Parser) parseColumnDefs() ([]ColumnDef, error) {
	var cols []ColumnDef
	for {
		c, err := p.parseColumnDef()
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)

		p.skipSpace()
		if !p.accept(",") {
			return cols, nil
		}
		p.advance()
	}
}

// parseColumnDef reads "name INT" or "name VARCHAR ( n )".
func (p *Parser) parseColumnDef() (ColumnDef, error) {
	name, err := p.ident("column name")
	if err != nil {
		return ColumnDef{}, err
	}

	p.skipSpace()
	if p.eof() {
		return ColumnDef{}, syntaxErr("missing data type for column %s", name)
	}
	typ := strings.ToUpper(p.current())

	switch typ {
	case "INT":
		p.advance()
		return ColumnDef{Name: name, Type: typ}, nil

	case "VARCHAR":
		p.advance()
		if err := p.expect("("); err != nil {
			return ColumnDef{}, err
		}
		p.skipSpace()
		raw := p.current()
		size, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return ColumnDef{}, syntaxErr("invalid VARCHAR size %s for column %s", describe(raw, p.eof()), name)
		}
		p.advance()
		if err := p.expect(")"); err != nil {
			return ColumnDef{}, err
		}
		return ColumnDef{Name: name, Type: typ, Size: uint32(size)}, nil

	default:
		return ColumnDef{}, syntaxErr("unknown data type %q for column %s", p.current(), name)
	}
}

// identList reads "name [, name ...]".
func (p *Parser) identList() ([]string, error) {
	var out []string
	for {
		id, err := p.ident("column name")
		if err != nil {
			return nil, err
		}
		out = append(out, id)

		p.skipSpace()
		if !p.accept(",") {
			return out, nil
		}
		p.advance()
	}
}

// valueList reads "val [, val ...]". Values are kept as raw text.
func (p *Parser) valueList() ([]string, error) {
	var out []string
	for {
		p.skipSpace()
		tok := p.current()
		if p.eof() || isPunct(tok) {
			return nil, syntaxErr("expected value, got %s", describe(tok, p.eof()))
		}
		out = append(out, tok)
		p.advance()

		p.skipSpace()
		if !p.accept(",") {
			return out, nil
		}
		p.advance()
	}
}

// ---- cursor helpers ----

func (p *Parser) eof() bool { return p.cursor >= len(p.tokens) }

func (p *Parser) current() lexer.Token {
	if p.eof() {
		return ""
	}
	return p.tokens[p.cursor]
}

func (p *Parser) advance() {
	if !p.eof() {
		p.cursor++
	}
}

func (p *Parser) skipSpace() {
	for !p.eof() && lexer.IsSpace(p.current()) {
		p.cursor++
	}
}

// accept reports whether the current token is want (case-insensitive).
func (p *Parser) accept(want string) bool {
	return !p.eof() && strings.EqualFold(p.current(), want)
}

// expect skips whitespace, then consumes want or fails.
func (p *Parser) expect(want string) error {
	p.skipSpace()
	if !p.accept(want) {
		return syntaxErr("expected %q, got %s", want, describe(p.current(), p.eof()))
	}
	p.advance()
	return nil
}

func (p *Parser) expectAll(want ...string) error {
	for _, w := range want {
		if err := p.expect(w); err != nil {
			return err
		}
	}
	return nil
}

// ident skips whitespace, then consumes an identifier.
func (p *Parser) ident(what string) (string, error) {
	p.skipSpace()
	if p.eof() {
		return "", syntaxErr("expected %s, got end of input", what)
	}
	id, err := parseIdent(p.current())
	if err != nil {
		return "", syntaxErr("expected %s: %v", what, err)
	}
	p.advance()
	return id, nil
}

// parseIdent validates an identifier (table/column name).
// Rules:
//   - first char: letter or '_'
//   - rest: letter/digit/'_'
func parseIdent(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("missing identifier")
	}
	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return "", fmt.Errorf("invalid identifier %q", s)
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return "", fmt.Errorf("invalid identifier %q", s)
		}
	}
	return s, nil
}

func isPunct(tok lexer.Token) bool {
	r := []rune(tok)
	return len(r) == 1 && lexer.IsDelimiter(r[0])
}

func describe(tok lexer.Token, eof bool) string {
	if eof {
		return "end of input"
	}
	return strconv.Quote(tok)
}
