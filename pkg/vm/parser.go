package vm

// Parser reads tokens one at a time from a Tokenizer and drives command
// parsing by each command's fixed arity, grounded on the source parser's
// leading-command dispatch.
type Parser struct {
	tok *Tokenizer
}

// NewParser builds a Parser reading tokens from tok.
func NewParser(tok *Tokenizer) *Parser {
	return &Parser{tok: tok}
}

// Next returns the next parsed Command, or ok=false at clean end of input.
func (p *Parser) Next() (Command, bool, error) {
	tok, ok, err := p.tok.Next()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	if tok.Kind != TokCommand {
		return nil, false, &ParseError{Kind: ErrExpectedCommand, Received: &tok}
	}
	cmd, err := p.parseCommand(tok.Command)
	if err != nil {
		return nil, false, err
	}
	return cmd, true, nil
}

func (p *Parser) parseCommand(cmd Cmd) (Command, error) {
	switch cmd {
	case CmdFunction:
		name, err := p.identifier()
		if err != nil {
			return nil, err
		}
		locals, err := p.intConst()
		if err != nil {
			return nil, err
		}
		return Function{Name: name, Locals: locals}, nil
	case CmdCall:
		target, err := p.identifier()
		if err != nil {
			return nil, err
		}
		argc, err := p.intConst()
		if err != nil {
			return nil, err
		}
		return Call{Target: target, Argc: argc}, nil
	case CmdReturn:
		return Return{}, nil
	case CmdLabel:
		name, err := p.identifier()
		if err != nil {
			return nil, err
		}
		return Label{Name: name}, nil
	case CmdGoto:
		name, err := p.identifier()
		if err != nil {
			return nil, err
		}
		return Goto{Name: name}, nil
	case CmdIfGoto:
		name, err := p.identifier()
		if err != nil {
			return nil, err
		}
		return IfGoto{Name: name}, nil
	case CmdPush:
		seg, err := p.segment()
		if err != nil {
			return nil, err
		}
		idx, err := p.intConst()
		if err != nil {
			return nil, err
		}
		return Push{Segment: seg, Index: idx}, nil
	case CmdPop:
		seg, err := p.segment()
		if err != nil {
			return nil, err
		}
		idx, err := p.intConst()
		if err != nil {
			return nil, err
		}
		return Pop{Segment: seg, Index: idx}, nil
	case CmdAdd:
		return Add{}, nil
	case CmdSub:
		return Sub{}, nil
	case CmdNeg:
		return Neg{}, nil
	case CmdAnd:
		return And{}, nil
	case CmdOr:
		return Or{}, nil
	case CmdNot:
		return Not{}, nil
	case CmdEq:
		return Eq{}, nil
	case CmdLt:
		return Lt{}, nil
	case CmdGt:
		return Gt{}, nil
	default:
		return nil, &ParseError{Kind: ErrExpectedCommand}
	}
}

func (p *Parser) identifier() (string, error) {
	tok, ok, err := p.tok.Next()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &ParseError{Kind: ErrExpectedIdentifier}
	}
	if tok.Kind != TokIdentifier {
		return "", &ParseError{Kind: ErrExpectedIdentifier, Received: &tok}
	}
	return tok.Identifier, nil
}

func (p *Parser) intConst() (uint16, error) {
	tok, ok, err := p.tok.Next()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, &ParseError{Kind: ErrExpectedIntConst}
	}
	if tok.Kind != TokIntConst {
		return 0, &ParseError{Kind: ErrExpectedIntConst, Received: &tok}
	}
	return tok.IntConst, nil
}

func (p *Parser) segment() (Segment, error) {
	tok, ok, err := p.tok.Next()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &ParseError{Kind: ErrExpectedSegment}
	}
	if tok.Kind != TokSegment {
		return "", &ParseError{Kind: ErrExpectedSegment, Received: &tok}
	}
	return tok.Segment, nil
}
