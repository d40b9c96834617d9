// parser.go
//
// Recursive-descent parser: a current-token cursor with match/check/
// advance/consume helpers, and panic-based error unwinding local to a
// single statement.
package nano

// Parser consumes a token stream and produces a flat statement list.
type Parser struct {
	tokens  []Token
	current int
	rep     *Reporter
}

// NewParser returns a Parser over tokens, reporting through rep.
func NewParser(tokens []Token, rep *Reporter) *Parser {
	return &Parser{tokens: tokens, rep: rep}
}

// parseSignal is used internally to unwind out of a broken statement into
// synchronize(), without aborting the whole parse.
type parseSignal struct{}

// Parse parses the whole token stream into a statement list. Parse errors
// are reported via the Reporter and recovered from by synchronizing to the
// next statement boundary; Parse always returns whatever statements were
// successfully parsed.
func (p *Parser) Parse() []Stmt {
	var stmts []Stmt
	for !p.isAtEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

// --- token cursor helpers ------------------------------------------------

func (p *Parser) peek() Token     { return p.tokens[p.current] }
func (p *Parser) previous() Token { return p.tokens[p.current-1] }
func (p *Parser) isAtEnd() bool   { return p.peek().Type == EOF }

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(t TokenType) bool {
	if p.isAtEnd() {
		return t == EOF
	}
	return p.peek().Type == t
}

func (p *Parser) match(types ...TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances past an expected token type or reports a diagnostic and
// triggers synchronization.
func (p *Parser) consume(t TokenType, msg string) Token {
	if p.check(t) {
		return p.advance()
	}
	p.errorAt(p.peek(), msg)
	panic(parseSignal{})
}

func (p *Parser) errorAt(tok Token, msg string) {
	p.rep.parseError(tok, msg)
}

// synchronize advances until after a ';' or until the next of
// `def if for while return`.
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		if p.previous().Type == SEMICOLON {
			return
		}
		switch p.peek().Type {
		case DEF, IF, FOR, WHILE, RETURN:
			return
		}
		p.advance()
	}
}

// --- statements -----------------------------------------------------------

// declaration wraps statement() with panic recovery so a broken statement
// only aborts itself, then synchronizes and resumes.
func (p *Parser) declaration() (result Stmt) {
	startPos := p.current
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseSignal); !ok {
				panic(r)
			}
			if p.current == startPos {
				p.advance()
			}
			p.synchronize()
			result = nil
		}
	}()
	if cls, ok := p.tryClassDefinition(); ok {
		return cls
	}
	return p.statement()
}

// tryClassDefinition looks for `IDENT ":" [IDENT] "=" "{"` via save/restore.
func (p *Parser) tryClassDefinition() (Stmt, bool) {
	save := p.current
	if !p.check(IDENT) {
		return nil, false
	}
	nameTok := p.advance()
	if !p.match(COLON) {
		p.current = save
		return nil, false
	}
	parent := ""
	if p.check(IDENT) {
		parent = p.advance().Lexeme
	}
	if !p.match(EQUAL) || !p.check(LBRACE) {
		p.current = save
		return nil, false
	}
	p.advance() // consume '{'
	body := p.blockStmts()
	return &ClassStmt{Name: nameTok.Lexeme, Parent: parent, Body: body, Line: nameTok.Line}, true
}

func (p *Parser) statement() Stmt {
	switch {
	case p.match(IF):
		return p.ifStatement()
	case p.match(WHILE):
		return p.whileStatement()
	case p.match(FOR):
		return p.forStatement()
	case p.match(DEF):
		return p.functionStatement()
	case p.match(RETURN):
		return p.returnStatement()
	case p.check(LBRACE):
		p.advance()
		return &BlockStmt{Stmts: p.blockStmts()}
	default:
		return p.expressionStatement()
	}
}

// blockStmts parses statements up to and consuming the matching '}'.
func (p *Parser) blockStmts() []Stmt {
	var stmts []Stmt
	for !p.check(RBRACE) && !p.isAtEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.consume(RBRACE, "Expect '}' after block.")
	return stmts
}

func (p *Parser) block() *BlockStmt {
	p.consume(LBRACE, "Expect '{'.")
	return &BlockStmt{Stmts: p.blockStmts()}
}

func (p *Parser) ifStatement() Stmt {
	p.consume(LPAREN, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(RPAREN, "Expect ')' after condition.")
	then := p.block()
	var els *BlockStmt
	if p.match(ELSE) {
		els = p.block()
	}
	return &IfStmt{Cond: cond, Then: then, Else: els}
}

func (p *Parser) whileStatement() Stmt {
	p.consume(LPAREN, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(RPAREN, "Expect ')' after condition.")
	body := p.block()
	return &WhileStmt{Cond: cond, Body: body}
}

func (p *Parser) forStatement() Stmt {
	line := p.previous().Line
	p.consume(LPAREN, "Expect '(' after 'for'.")
	name := p.consume(IDENT, "Expect loop variable name.")
	p.consume(IN, "Expect 'in' after loop variable.")
	iterable := p.expression()
	p.consume(RPAREN, "Expect ')' after iterable.")
	body := p.block()
	return &ForStmt{Var: name.Lexeme, Iterable: iterable, Body: body, Line: line}
}

func (p *Parser) functionStatement() Stmt {
	line := p.previous().Line
	name := p.consume(IDENT, "Expect function name.")
	params := p.paramList()
	body := p.block()
	return &FunctionStmt{Name: name.Lexeme, Params: params, Body: body, Line: line}
}

func (p *Parser) paramList() []string {
	p.consume(LPAREN, "Expect '(' after function name.")
	var params []string
	if !p.check(RPAREN) {
		for {
			params = append(params, p.consume(IDENT, "Expect parameter name.").Lexeme)
			if !p.match(COMMA) {
				break
			}
		}
	}
	p.consume(RPAREN, "Expect ')' after parameters.")
	return params
}

func (p *Parser) returnStatement() Stmt {
	line := p.previous().Line
	var value Expr
	if !p.check(SEMICOLON) && !p.check(RBRACE) {
		value = p.expression()
	}
	p.match(SEMICOLON)
	return &ReturnStmt{Value: value, Line: line}
}

func (p *Parser) expressionStatement() Stmt {
	expr := p.expression()
	p.match(SEMICOLON)
	return &ExpressionStmt{Expr: expr}
}

// --- expressions: precedence ladder ---------------------------------------

func (p *Parser) expression() Expr { return p.ternary() }

func (p *Parser) ternary() Expr {
	expr := p.assignment()
	if p.match(QUESTION) {
		line := p.previous().Line
		then := p.expression()
		p.consume(COLON, "Expect ':' in ternary expression.")
		els := p.ternary()
		return &TernaryExpr{Cond: expr, Then: then, Else: els, Line_: line}
	}
	return expr
}

func (p *Parser) assignment() Expr {
	expr := p.or()
	if p.match(EQUAL) {
		line := p.previous().Line
		value := p.assignment()
		switch target := expr.(type) {
		case *VariableExpr:
			return &AssignExpr{Target: target, Value: value, Line_: line}
		case *GetExpr:
			return &SetExpr{Obj: target.Obj, Index: target.Index, Value: value, Line_: line}
		default:
			p.errorAt(p.previous(), "Invalid assignment target.")
			panic(parseSignal{})
		}
	}
	return expr
}

func (p *Parser) or() Expr {
	expr := p.and()
	for p.match(OR) {
		line := p.previous().Line
		right := p.and()
		expr = &BinaryExpr{Left: expr, Op: OR, Right: right, Line_: line}
	}
	return expr
}

func (p *Parser) and() Expr {
	expr := p.equality()
	for p.match(AND) {
		line := p.previous().Line
		right := p.equality()
		expr = &BinaryExpr{Left: expr, Op: AND, Right: right, Line_: line}
	}
	return expr
}

func (p *Parser) equality() Expr {
	expr := p.comparison()
	for p.match(EQUALEQUAL, BANGEQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = &BinaryExpr{Left: expr, Op: op.Type, Right: right, Line_: op.Line}
	}
	return expr
}

func (p *Parser) comparison() Expr {
	expr := p.term()
	for p.match(LESS, LESSEQUAL, GREATER, GREATEREQUAL) {
		op := p.previous()
		right := p.term()
		expr = &BinaryExpr{Left: expr, Op: op.Type, Right: right, Line_: op.Line}
	}
	return expr
}

func (p *Parser) term() Expr {
	expr := p.factor()
	for p.match(PLUS, MINUS) {
		op := p.previous()
		right := p.factor()
		expr = &BinaryExpr{Left: expr, Op: op.Type, Right: right, Line_: op.Line}
	}
	return expr
}

func (p *Parser) factor() Expr {
	expr := p.unary()
	for p.match(STAR, SLASH) {
		op := p.previous()
		right := p.unary()
		expr = &BinaryExpr{Left: expr, Op: op.Type, Right: right, Line_: op.Line}
	}
	return expr
}

func (p *Parser) unary() Expr {
	if p.match(BANG, MINUS) {
		op := p.previous()
		right := p.unary()
		return &UnaryExpr{Op: op.Type, Right: right, Line_: op.Line}
	}
	return p.call()
}

func (p *Parser) call() Expr {
	expr := p.subscript()
	for {
		switch {
		case p.match(LPAREN):
			expr = p.finishCall(expr)
		case p.match(DOT):
			name := p.consume(IDENT, "Expect property name after '.'.")
			expr = &DotExpr{Obj: expr, Name: name.Lexeme, Line_: name.Line}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee Expr) Expr {
	line := p.previous().Line
	var args []Expr
	if !p.check(RPAREN) {
		for {
			args = append(args, p.expression())
			if !p.match(COMMA) {
				break
			}
		}
	}
	p.consume(RPAREN, "Expect ')' after arguments.")
	return &CallExpr{Callee: callee, Args: args, Line_: line}
}

func (p *Parser) subscript() Expr {
	expr := p.primary()
	for p.match(LBRACKET) {
		line := p.previous().Line
		idx := p.expression()
		p.consume(RBRACKET, "Expect ']' after index.")
		expr = &GetExpr{Obj: expr, Index: idx, Line_: line}
	}
	return expr
}

func (p *Parser) primary() Expr {
	tok := p.peek()
	switch {
	case p.match(NUMBER, STRING):
		lit := p.previous()
		return &LiteralExpr{Value: lit.Literal, Line_: lit.Line}
	case p.match(TRUE):
		return &LiteralExpr{Value: Bool(true), Line_: tok.Line}
	case p.match(FALSE):
		return &LiteralExpr{Value: Bool(false), Line_: tok.Line}
	case p.match(NONE):
		return &LiteralExpr{Value: None, Line_: tok.Line}
	case p.match(DEF):
		return p.functionExpr()
	case p.check(LBRACKET):
		return p.arrayOrRange()
	case p.check(LBRACE):
		return p.dictLiteral()
	case p.isLambdaStart():
		return p.lambda()
	case p.match(IDENT):
		return &VariableExpr{Name: p.previous().Lexeme, Line_: p.previous().Line}
	case p.match(LPAREN):
		inner := p.expression()
		p.consume(RPAREN, "Expect ')' after expression.")
		return &GroupingExpr{Inner: inner, Line_: tok.Line}
	default:
		p.errorAt(tok, "Expect expression.")
		panic(parseSignal{})
	}
}

func (p *Parser) functionExpr() Expr {
	line := p.previous().Line
	name := ""
	if p.check(IDENT) {
		name = p.advance().Lexeme
	}
	params := p.paramList()
	body := p.block()
	return &FunctionExpr{Name: name, Params: params, Body: body, Line_: line}
}

// isLambdaStart peeks for `IDENT "->"` or `"(" IDENT,* ")" "->"` without
// consuming.
func (p *Parser) isLambdaStart() bool {
	save := p.current
	defer func() { p.current = save }()

	if p.check(IDENT) {
		p.advance()
		return p.check(ARROW)
	}
	if !p.check(LPAREN) {
		return false
	}
	p.advance()
	if !p.check(RPAREN) {
		for {
			if !p.check(IDENT) {
				return false
			}
			p.advance()
			if !p.match(COMMA) {
				break
			}
		}
	}
	if !p.match(RPAREN) {
		return false
	}
	return p.check(ARROW)
}

func (p *Parser) lambda() Expr {
	line := p.peek().Line
	var params []string
	if p.match(IDENT) {
		params = append(params, p.previous().Lexeme)
	} else {
		p.consume(LPAREN, "Expect '(' in lambda parameters.")
		if !p.check(RPAREN) {
			for {
				params = append(params, p.consume(IDENT, "Expect parameter name.").Lexeme)
				if !p.match(COMMA) {
					break
				}
			}
		}
		p.consume(RPAREN, "Expect ')' after lambda parameters.")
	}
	p.consume(ARROW, "Expect '->' in lambda.")
	body := p.expression()
	retLine := p.previous().Line
	block := &BlockStmt{Stmts: []Stmt{&ReturnStmt{Value: body, Line: retLine}}}
	return &FunctionExpr{Name: "", Params: params, Body: block, Line_: line}
}

// arrayOrRange parses an array literal or, when a `::` follows the first
// element, a range literal.
func (p *Parser) arrayOrRange() Expr {
	open := p.consume(LBRACKET, "Expect '['.")
	if p.match(RBRACKET) {
		return &ArrayExpr{Elements: nil, Line_: open.Line}
	}
	first := p.expression()
	if p.match(COLONCOLON) {
		end := p.expression()
		var step Expr
		if p.match(COLONCOLON) {
			step = p.expression()
		}
		p.consume(RBRACKET, "Expect ']' after range.")
		return &RangeExpr{Start: first, End: end, Step: step, Line_: open.Line}
	}
	elems := []Expr{first}
	for p.match(COMMA) {
		if p.check(RBRACKET) {
			break
		}
		elems = append(elems, p.expression())
	}
	p.consume(RBRACKET, "Expect ']' after array elements.")
	return &ArrayExpr{Elements: elems, Line_: open.Line}
}

// dictLiteral implements `"{" (key ":" value),* ","? "}"`; a bare-identifier
// key is rewritten as its name as a string literal.
func (p *Parser) dictLiteral() Expr {
	open := p.consume(LBRACE, "Expect '{'.")
	var entries []DictEntry
	if !p.check(RBRACE) {
		for {
			var key Expr
			if p.check(IDENT) && p.peekNextIs(COLON) {
				tok := p.advance()
				key = &LiteralExpr{Value: String(tok.Lexeme), Line_: tok.Line}
			} else {
				key = p.expression()
			}
			p.consume(COLON, "Expect ':' after dict key.")
			val := p.expression()
			entries = append(entries, DictEntry{Key: key, Value: val})
			if !p.match(COMMA) {
				break
			}
			if p.check(RBRACE) {
				break
			}
		}
	}
	p.consume(RBRACE, "Expect '}' after dict entries.")
	return &DictExpr{Entries: entries, Line_: open.Line}
}

func (p *Parser) peekNextIs(t TokenType) bool {
	if p.current+1 >= len(p.tokens) {
		return false
	}
	return p.tokens[p.current+1].Type == t
}
