package jack

import (
	"fmt"
	"io"
	"os"

	pc "github.com/prataprc/goparsec"

	"n2t.dev/toolchain/pkg/utils"
)

var ast = pc.NewAST("jack_program", 0)

var (
	pClass = ast.And("class_decl", nil,
		ast.Kleene("file_header", nil, pComment),
		pc.Atom("class", "CLASS"), pIdent, pLBrace,
		ast.Kleene("fields_or_comments", nil, ast.OrdChoice("items", nil, pField, pComment)),
		ast.Kleene("methods_or_comments", nil, ast.OrdChoice("items", nil, pMethod, pComment)),
		pRBrace,
	)

	pField = ast.And("field_decl", nil,
		ast.OrdChoice("scope", nil, pc.Atom("static", "STATIC"), pc.Atom("field", "FIELD")),
		pDataType, ast.Many("names", nil, pIdent, pComma), pSemi,
	)

	pMethod = ast.And("method_decl", nil,
		// Func/method/constructor keyword, return type and function/method name
		ast.OrdChoice("kind", nil, pc.Atom("constructor", "CTOR"), pc.Atom("method", "METHOD"), pc.Atom("function", "FUNC")),
		pDataType, pIdent,
		// '(', comma separated argument type(s) and name(s), ')'
		pLParen, ast.Kleene("arguments", nil, ast.And("argument", nil, pDataType, pIdent), pComma), pRParen,
		// '{', statement and or comments (s), '}'
		pLBrace, ast.Kleene("statements_or_comments", nil, ast.OrdChoice("item", nil, pStatementRef, pComment)), pRBrace,
	)

	// TODO (hmny): We need to inject comment parsing everywhere basically
	pComment = ast.OrdChoice("comment", nil,
		// Single line comments (e.g. "// This is a comment")
		ast.And("sl_comment", nil, pc.Atom("//", "//"), pc.Token(`(?m).*$`, "COMMENT")),
		// Multi line comments (e.g. "/* This is a comment */")
		ast.And("ml_comment", nil, pc.Token(`/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`, "COMMENT")),
	)
)

// pStatementRef is a forward reference to pStatement: goparsec combinators
// capture a parser's current value at the point they're constructed, so a
// directly self-referential grammar (if/while bodies containing statements)
// would capture pStatement while it's still nil. Routing through a thunk
// that reads pStatement at parse time (not at grammar-construction time)
// breaks the cycle.
func pStatementRef(s pc.Scanner) (pc.ParsecNode, pc.Scanner) { return pStatement(s) }

var pStatement pc.Parser

func init() {
	ifStmt := ast.And("if_stmt", nil,
		pc.Atom("if", "IF"), pLParen, pExpr, pRParen, pLBrace,
		ast.Kleene("then_block", nil, pStatementRef), pRBrace,
		pc.Maybe(nil, ast.And("else_block", nil, pc.Atom("else", "ELSE"), pLBrace,
			ast.Kleene("stmts", nil, pStatementRef), pRBrace)),
	)

	whileStmt := ast.And("while_stmt", nil,
		pc.Atom("while", "WHILE"), pLParen, pExpr, pRParen, pLBrace,
		ast.Kleene("block", nil, pStatementRef), pRBrace,
	)

	pStatement = ast.OrdChoice("statement", nil, pDoStmt, pReturnStmt, pVarStmt, pLetStmt, ifStmt, whileStmt)
}

var (
	pDoStmt = ast.And("do_stmt", nil,
		// Support both external method call and local method call syntax:
		// - 'External': call to another class method (e.g. 'do X.ExtMethod()')
		// - 'Local': call to same class/instance method (e.g. 'do InternalMethod()')
		pc.Atom("do", "DO"), ast.Many("qualifiers", nil, pIdent, pDot),
		// '(', comma separated argument passing w/ expression to be eval'd, ')'
		pLParen, ast.Kleene("args", nil, pExpr, pComma), pRParen, pSemi,
	)

	pReturnStmt = ast.And("return_stmt", nil, pc.Atom("return", "RETURN"), pc.Maybe(nil, pExpr), pSemi)

	pVarStmt = ast.And("var_stmt", nil,
		pc.Atom("var", "VAR"), pDataType, ast.Many("names", nil, pIdent, pComma), pSemi,
	)

	pLetStmt = ast.And("let_stmt", nil,
		pc.Atom("let", "LET"), pIdent,
		pc.Maybe(nil, ast.And("index", nil, pc.Atom("[", "LBRACK"), pExpr, pc.Atom("]", "RBRACK"))),
		pc.Atom("=", "EQUALS"), pExpr, pSemi,
	)
)

var (
	// ! The order of this PCs is important: by putting Int() before Float() we'll not be able to parse a float
	// !completely because the integer part will be picked up by the Int() PC before given back control to PExpr.
	// pExpr only recognises the shape of an expression (a literal, a bare
	// variable reference, an array index, or a function call) without
	// typing or operator precedence: the statement grammar around it is
	// what the partial front end needs, not a full expression evaluator.
	pExpr = ast.OrdChoice("expression", nil, pLiteral, pIdentExpr)

	pIdentExpr = ast.And("ident_expr", nil,
		ast.Many("qualifiers", nil, pIdent, pDot),
		pc.Maybe(nil, ast.OrdChoice("suffix", nil,
			ast.And("call_suffix", nil, pLParen, ast.Kleene("args", nil, pExpr, pComma), pRParen),
			ast.And("index_suffix", nil, pc.Atom("[", "LBRACK"), pExpr, pc.Atom("]", "RBRACK")),
		)),
	)

	pLiteral = ast.OrdChoice("literal", nil,
		// Numeric literals (int and float) as well as string literals
		pc.Float(), pc.Int(), pc.Token(`"(?:\\.|[^"\\])*"`, "STRING"),
		// also we cover in this way boolean literal declaration (true | false) and null
		pc.Token("true", "TRUE"), pc.Token("false", "FALSE"),
		pc.Token("null", "NULL"), // TODO (hmny): Should we also add char literal PC
	)
)

var (
	// Generic Identifier parser (for label and function declaration)
	// NOTE: An ident can be any sequence of letters, digits, and symbols (_, $, :); '.' is the separate DOT token.
	// NOTE: An ident cannot begin with a leading digit (a symbol is indeed allowed).
	pIdent = pc.Token(`[A-Za-z_$:][0-9a-zA-Z_$:]*`, "IDENT")

	pDot    = pc.Atom(".", "DOT")
	pSemi   = pc.Atom(";", "SEMI")
	pComma  = pc.Atom(",", "COMMA")
	pLBrace = pc.Atom("{", "LBRACE")
	pRBrace = pc.Atom("}", "RBRACE")
	pLParen = pc.Atom("(", "LPAREN")
	pRParen = pc.Atom(")", "RPAREN")

	// Available data types, covering the built-ins plus class (object) names
	pDataType = ast.OrdChoice("data_type", nil,
		pc.Atom("int", "INT"), pc.Atom("char", "CHAR"), pc.Atom("bool", "BOOL"),
		pc.Atom("null", "NULL"), pc.Atom("void", "VOID"), pIdent,
	)
)

// ----------------------------------------------------------------------------
// Jack Parser

// This section defines the Parser for the nand2tetris Jack language.
//
// It uses parser combinator(s) to obtain the AST from the source code (the latter can be provided)
// in multiple ways using a generic io.Reader, the library reads up the feature flags (as env vars):
// - PARSEC_DEBUG: Verbose logging to inspect which of the PCs gets triggered and match
// - EXPORT_AST: Exports in the DEBUG_FOLDER a Graphviz representation of the AST
// - PRINT_AST:  Print on the stdout a textual representation of the AST
type Parser struct{ reader io.Reader }

// Initializes and returns to the caller a brand new 'Parser' struct.
// Requires the argument io.Reader 'r' to be valid and usable.
func NewParser(r io.Reader) Parser {
	return Parser{reader: r}
}

// Parser entrypoint divides the 2 phases of the parsing pipeline
// Text --> AST: This step is done using PCs and returns a generic traversable AST
// AST --> Class: This step is done by traversing the AST and extracting the class-level skeleton
func (p *Parser) Parse() (Class, error) {
	content, err := io.ReadAll(p.reader)
	if err != nil {
		return Class{}, fmt.Errorf("cannot read from 'io.Reader': %s", err)
	}

	root, success := p.FromSource(content)
	if !success || root == nil {
		return Class{}, fmt.Errorf("failed to parse AST from input content")
	}

	return fromClassAST(root)
}

// Scans the textual input stream coming from the 'reader' method and returns a traversable AST
// (Abstract Syntax Tree) that can be eventually visited to extract/transform the info available.
func (p *Parser) FromSource(source []byte) (pc.Queryable, bool) {

	// Feature flag: Enable 'goparsec' library's debug logs
	if os.Getenv("PARSEC_DEBUG") != "" {
		ast.SetDebug()
	}

	// We generate the traversable Abstract Syntax Tree from the source content
	root, scanner := ast.Parsewith(pClass, pc.NewScanner(source))

	// Feature flag: Enables export of the AST as Dot file (debug.ast.dot)
	if os.Getenv("EXPORT_AST") != "" {
		file, _ := os.Create(fmt.Sprintf("%s/debug.ast.dot", os.Getenv("DEBUG_FOLDER")))
		defer file.Close()

		file.Write([]byte(ast.Dotstring("\"Jack AST\"")))
	}

	// Feature flag: Enables pretty printing of the AST on the console
	if os.Getenv("PRINT_AST") != "" {
		ast.Prettyprint()
	}

	queryable, ok := root.(pc.Queryable)
	// Success requires both a matched root node and the scanner having
	// reached EOF (no trailing, unparsed content).
	return queryable, ok && queryable != nil && scanner.Endof()
}

// ----------------------------------------------------------------------------
// AST --> Class traversal
//
// The grammar above is expressed with goparsec's AST combinators, whose
// exact node nesting mirrors the `ast.And`/`ast.Kleene`/`ast.OrdChoice` call
// tree rather than a hand-designed shape. Instead of pattern-matching that
// nesting directly, fromClassAST flattens the whole subtree into its
// ordered sequence of leaf tokens (comments stripped) and walks that flat
// stream with a small recursive-descent reader mirroring the grammar's own
// token order. This keeps the traversal robust to exactly how each
// combinator groups its children.

type leaf struct{ name, value string }

// flattenLeaves walks 'node' depth-first and collects every terminal token
// (a node with no children) in source order.
func flattenLeaves(node pc.Queryable) []leaf {
	if node == nil {
		return nil
	}
	children := node.GetChildren()
	if len(children) == 0 {
		return []leaf{{name: node.GetName(), value: node.GetValue()}}
	}
	var out []leaf
	for _, child := range children {
		queryable, ok := child.(pc.Queryable)
		if !ok {
			continue
		}
		out = append(out, flattenLeaves(queryable)...)
	}
	return out
}

// tokenCursor is a read-only, one-directional view over a flattened leaf
// sequence, used to reconstruct the class-level skeleton.
type tokenCursor struct {
	leaves []leaf
	pos    int
}

func newTokenCursor(node pc.Queryable) *tokenCursor {
	all := flattenLeaves(node)
	filtered := make([]leaf, 0, len(all))
	for _, l := range all {
		if l.name == "//" || l.name == "COMMENT" {
			continue // comments carry no skeleton information
		}
		filtered = append(filtered, l)
	}
	return &tokenCursor{leaves: filtered}
}

func (c *tokenCursor) peek() (leaf, bool) {
	if c.pos >= len(c.leaves) {
		return leaf{}, false
	}
	return c.leaves[c.pos], true
}

func (c *tokenCursor) next() (leaf, bool) {
	l, ok := c.peek()
	if ok {
		c.pos++
	}
	return l, ok
}

func (c *tokenCursor) expect(name string) (leaf, error) {
	l, ok := c.next()
	if !ok {
		return leaf{}, fmt.Errorf("unexpected end of input, expected %q", name)
	}
	if l.name != name {
		return leaf{}, fmt.Errorf("expected %q, got %q (%s)", name, l.name, l.value)
	}
	return l, nil
}

func fromClassAST(root pc.Queryable) (Class, error) {
	c := newTokenCursor(root)
	return parseClass(c)
}

func parseDataType(c *tokenCursor) (DataType, string, error) {
	l, ok := c.next()
	if !ok {
		return "", "", fmt.Errorf("expected a data type, got end of input")
	}
	switch l.name {
	case "INT":
		return Int, "", nil
	case "CHAR":
		return Char, "", nil
	case "BOOL":
		return Bool, "", nil
	case "NULL":
		return Null, "", nil
	case "VOID":
		return Void, "", nil
	case "IDENT":
		return Object, l.value, nil
	default:
		return "", "", fmt.Errorf("expected a data type, got %q", l.name)
	}
}

func parseClass(c *tokenCursor) (Class, error) {
	if _, err := c.expect("CLASS"); err != nil {
		return Class{}, err
	}
	name, err := c.expect("IDENT")
	if err != nil {
		return Class{}, err
	}
	if _, err := c.expect("LBRACE"); err != nil {
		return Class{}, err
	}

	class := Class{
		Name:        name.value,
		Fields:      utils.NewOrderedMap[string, Variable](),
		Subroutines: utils.NewOrderedMap[string, Subroutine](),
	}

	for {
		l, ok := c.peek()
		if !ok {
			return Class{}, fmt.Errorf("unexpected end of input inside class %q", class.Name)
		}
		switch l.name {
		case "RBRACE":
			c.next()
			return class, nil
		case "STATIC", "FIELD":
			if err := parseField(c, &class); err != nil {
				return Class{}, err
			}
		default:
			sub, err := parseSubroutine(c)
			if err != nil {
				return Class{}, err
			}
			class.Subroutines.Set(sub.Name, sub)
		}
	}
}

func parseField(c *tokenCursor, class *Class) error {
	scope, ok := c.next()
	if !ok {
		return fmt.Errorf("unexpected end of input, expected a field declaration")
	}
	varType := Field
	if scope.name == "STATIC" {
		varType = Static
	}

	dataType, className, err := parseDataType(c)
	if err != nil {
		return err
	}

	for {
		nameTok, err := c.expect("IDENT")
		if err != nil {
			return err
		}
		class.Fields.Set(nameTok.value, Variable{
			Name: nameTok.value, Type: varType, DataType: dataType, ClassName: className,
		})

		l, ok := c.peek()
		if !ok {
			return fmt.Errorf("unexpected end of input in field declaration")
		}
		if l.name == "COMMA" {
			c.next()
			continue
		}
		break
	}
	if _, err := c.expect("SEMI"); err != nil {
		return err
	}
	return nil
}

func parseSubroutine(c *tokenCursor) (Subroutine, error) {
	kind, ok := c.next()
	if !ok {
		return Subroutine{}, fmt.Errorf("unexpected end of input, expected a subroutine declaration")
	}

	var subType SubroutineType
	switch kind.name {
	case "CTOR":
		subType = Constructor
	case "METHOD":
		subType = Method
	case "FUNC":
		subType = Function
	default:
		return Subroutine{}, fmt.Errorf("expected constructor/method/function, got %q", kind.name)
	}

	ret, _, err := parseDataType(c)
	if err != nil {
		return Subroutine{}, err
	}
	name, err := c.expect("IDENT")
	if err != nil {
		return Subroutine{}, err
	}

	if _, err := c.expect("LPAREN"); err != nil {
		return Subroutine{}, err
	}
	args := utils.NewOrderedMap[string, Variable]()
	for {
		l, ok := c.peek()
		if !ok {
			return Subroutine{}, fmt.Errorf("unexpected end of input in argument list of %q", name.value)
		}
		if l.name == "RPAREN" {
			break
		}
		argType, argClass, err := parseDataType(c)
		if err != nil {
			return Subroutine{}, err
		}
		argName, err := c.expect("IDENT")
		if err != nil {
			return Subroutine{}, err
		}
		args.Set(argName.value, Variable{Name: argName.value, Type: Parameter, DataType: argType, ClassName: argClass})

		if l, ok := c.peek(); ok && l.name == "COMMA" {
			c.next()
			continue
		}
		break
	}
	if _, err := c.expect("RPAREN"); err != nil {
		return Subroutine{}, err
	}
	if _, err := c.expect("LBRACE"); err != nil {
		return Subroutine{}, err
	}

	var statements []Statement
	for {
		l, ok := c.peek()
		if !ok {
			return Subroutine{}, fmt.Errorf("unexpected end of input in body of %q", name.value)
		}
		if l.name == "RBRACE" {
			c.next()
			break
		}
		stmt, err := parseStatement(c)
		if err != nil {
			return Subroutine{}, err
		}
		statements = append(statements, stmt)
	}

	return Subroutine{
		Name: name.value, Type: subType, Return: ret,
		Arguments: args, Statements: statements,
	}, nil
}

func parseStatement(c *tokenCursor) (Statement, error) {
	l, ok := c.peek()
	if !ok {
		return nil, fmt.Errorf("unexpected end of input, expected a statement")
	}
	switch l.name {
	case "DO":
		return parseDoStmt(c)
	case "RETURN":
		return parseReturnStmt(c)
	case "VAR":
		return parseVarStmt(c)
	case "LET":
		return parseLetStmt(c)
	case "IF":
		return parseIfStmt(c)
	case "WHILE":
		return parseWhileStmt(c)
	default:
		return nil, fmt.Errorf("unexpected token %q, expected a statement", l.name)
	}
}

func parseDoStmt(c *tokenCursor) (Statement, error) {
	if _, err := c.expect("DO"); err != nil {
		return nil, err
	}
	call, err := parseCall(c)
	if err != nil {
		return nil, err
	}
	if _, err := c.expect("SEMI"); err != nil {
		return nil, err
	}
	return DoStmt{FuncCall: call}, nil
}

// parseCall consumes 'qualifiers.qualifiers...(' args ')'. A single
// qualifier is a bare local call; two or more is a call through a variable
// or class name.
func parseCall(c *tokenCursor) (FuncCallExpr, error) {
	var qualifiers []string
	for {
		name, err := c.expect("IDENT")
		if err != nil {
			return FuncCallExpr{}, err
		}
		qualifiers = append(qualifiers, name.value)

		if l, ok := c.peek(); ok && l.name == "DOT" {
			c.next()
			continue
		}
		break
	}

	call := FuncCallExpr{FuncName: qualifiers[len(qualifiers)-1]}
	if len(qualifiers) > 1 {
		call.IsExtCall = true
		call.Var = qualifiers[len(qualifiers)-2]
	}

	if _, err := c.expect("LPAREN"); err != nil {
		return FuncCallExpr{}, err
	}
	for {
		l, ok := c.peek()
		if !ok {
			return FuncCallExpr{}, fmt.Errorf("unexpected end of input in call argument list")
		}
		if l.name == "RPAREN" {
			break
		}
		arg, err := parseExpr(c)
		if err != nil {
			return FuncCallExpr{}, err
		}
		call.Arguments = append(call.Arguments, arg)

		if l, ok := c.peek(); ok && l.name == "COMMA" {
			c.next()
			continue
		}
		break
	}
	if _, err := c.expect("RPAREN"); err != nil {
		return FuncCallExpr{}, err
	}
	return call, nil
}

func parseReturnStmt(c *tokenCursor) (Statement, error) {
	if _, err := c.expect("RETURN"); err != nil {
		return nil, err
	}
	var expr Expression
	if l, ok := c.peek(); ok && l.name != "SEMI" {
		e, err := parseExpr(c)
		if err != nil {
			return nil, err
		}
		expr = e
	}
	if _, err := c.expect("SEMI"); err != nil {
		return nil, err
	}
	return ReturnStmt{Expr: expr}, nil
}

func parseVarStmt(c *tokenCursor) (Statement, error) {
	if _, err := c.expect("VAR"); err != nil {
		return nil, err
	}
	dataType, className, err := parseDataType(c)
	if err != nil {
		return nil, err
	}

	var vars []Variable
	for {
		name, err := c.expect("IDENT")
		if err != nil {
			return nil, err
		}
		vars = append(vars, Variable{Name: name.value, Type: Local, DataType: dataType, ClassName: className})

		if l, ok := c.peek(); ok && l.name == "COMMA" {
			c.next()
			continue
		}
		break
	}
	if _, err := c.expect("SEMI"); err != nil {
		return nil, err
	}
	return VarStmt{Vars: vars}, nil
}

func parseLetStmt(c *tokenCursor) (Statement, error) {
	if _, err := c.expect("LET"); err != nil {
		return nil, err
	}
	name, err := c.expect("IDENT")
	if err != nil {
		return nil, err
	}

	var lhs Expression = VarExpr{Var: name.value}
	if l, ok := c.peek(); ok && l.name == "LBRACK" {
		c.next()
		index, err := parseExpr(c)
		if err != nil {
			return nil, err
		}
		if _, err := c.expect("RBRACK"); err != nil {
			return nil, err
		}
		lhs = ArrayExpr{Var: name.value, Index: index}
	}

	if _, err := c.expect("EQUALS"); err != nil {
		return nil, err
	}
	rhs, err := parseExpr(c)
	if err != nil {
		return nil, err
	}
	if _, err := c.expect("SEMI"); err != nil {
		return nil, err
	}
	return LetStmt{Lhs: lhs, Rhs: rhs}, nil
}

func parseIfStmt(c *tokenCursor) (Statement, error) {
	if _, err := c.expect("IF"); err != nil {
		return nil, err
	}
	if _, err := c.expect("LPAREN"); err != nil {
		return nil, err
	}
	cond, err := parseExpr(c)
	if err != nil {
		return nil, err
	}
	if _, err := c.expect("RPAREN"); err != nil {
		return nil, err
	}

	thenBlock, err := parseBlock(c)
	if err != nil {
		return nil, err
	}

	stmt := IfStmt{Condition: cond, ThenBlock: thenBlock}
	if l, ok := c.peek(); ok && l.name == "ELSE" {
		c.next()
		elseBlock, err := parseBlock(c)
		if err != nil {
			return nil, err
		}
		stmt.ElseBlock = elseBlock
	}
	return stmt, nil
}

func parseWhileStmt(c *tokenCursor) (Statement, error) {
	if _, err := c.expect("WHILE"); err != nil {
		return nil, err
	}
	if _, err := c.expect("LPAREN"); err != nil {
		return nil, err
	}
	cond, err := parseExpr(c)
	if err != nil {
		return nil, err
	}
	if _, err := c.expect("RPAREN"); err != nil {
		return nil, err
	}

	block, err := parseBlock(c)
	if err != nil {
		return nil, err
	}
	return WhileStmt{Condition: cond, Block: block}, nil
}

func parseBlock(c *tokenCursor) ([]Statement, error) {
	if _, err := c.expect("LBRACE"); err != nil {
		return nil, err
	}
	var statements []Statement
	for {
		l, ok := c.peek()
		if !ok {
			return nil, fmt.Errorf("unexpected end of input in statement block")
		}
		if l.name == "RBRACE" {
			c.next()
			return statements, nil
		}
		stmt, err := parseStatement(c)
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
}

// parseExpr only recovers the shape the grammar committed to: a literal, a
// bare/qualified identifier, an array index, or a call — never an operator
// tree, since full expression typing is out of scope for this front end.
func parseExpr(c *tokenCursor) (Expression, error) {
	l, ok := c.peek()
	if !ok {
		return nil, fmt.Errorf("unexpected end of input, expected an expression")
	}

	switch l.name {
	case "INT", "FLOAT", "STRING", "TRUE", "FALSE", "NULL":
		c.next()
		return LiteralExpr{Type: literalDataType(l.name), Value: l.value}, nil
	case "IDENT":
		return parseIdentExpr(c)
	default:
		return nil, fmt.Errorf("unexpected token %q, expected an expression", l.name)
	}
}

func literalDataType(tokenName string) DataType {
	switch tokenName {
	case "INT", "FLOAT":
		return Int
	case "STRING":
		return String
	case "TRUE", "FALSE":
		return Bool
	default:
		return Null
	}
}

// parseIdentExpr handles the three identifier-led shapes: a bare variable
// reference, an array index, and a (possibly qualified) function call.
func parseIdentExpr(c *tokenCursor) (Expression, error) {
	first, err := c.expect("IDENT")
	if err != nil {
		return nil, err
	}

	if l, ok := c.peek(); ok && l.name == "DOT" {
		c.pos-- // rewind: parseCall re-reads the identifier we just consumed
		call, err := parseCall(c)
		if err != nil {
			return nil, err
		}
		return call, nil
	}

	l, ok := c.peek()
	if !ok {
		return VarExpr{Var: first.value}, nil
	}
	switch l.name {
	case "LPAREN":
		c.pos--
		return parseCall(c)
	case "LBRACK":
		c.next()
		index, err := parseExpr(c)
		if err != nil {
			return nil, err
		}
		if _, err := c.expect("RBRACK"); err != nil {
			return nil, err
		}
		return ArrayExpr{Var: first.value, Index: index}, nil
	default:
		return VarExpr{Var: first.value}, nil
	}
}
