package urlpattern

import "golang.org/x/exp/utf8string"

// https://urlpattern.spec.whatwg.org/#constructor-string-parser-state
type parserState uint8

// The order matters: changeState compares states by range.
const (
	stateInit parserState = iota
	stateProtocol
	stateAuthority
	stateUsername
	statePassword
	stateHostname
	statePort
	statePathname
	stateSearch
	stateHash
	stateDone
)

// https://urlpattern.spec.whatwg.org/#constructor-string-parser
type constructorStringParser struct {
	input                        *utf8string.String
	tokens                       []token
	result                       URLPatternInit
	componentStart               int
	tokenIndex                   int
	tokenIncrement               int
	groupDepth                   int
	hostnameIPv6BracketDepth     int
	protocolMatchesSpecialScheme bool
	state                        parserState
}

// https://urlpattern.spec.whatwg.org/#parse-a-constructor-string
func parseConstructorString(input string) (*URLPatternInit, error) {
	tokens, err := tokenize(input, tokenizePolicyLenient)
	if err != nil {
		return nil, err
	}

	p := &constructorStringParser{
		input:          utf8string.NewString(input),
		tokens:         tokens,
		tokenIncrement: 1,
	}

	p.run()

	return &p.result, nil
}

func (p *constructorStringParser) run() {
	for p.tokenIndex < len(p.tokens) {
		p.tokenIncrement = 1

		if p.tokens[p.tokenIndex].tType == tokenEnd {
			switch p.state {
			case stateInit:
				// no delimiter was found: re-read everything as a relative URL
				p.rewind()

				switch {
				case p.isHashPrefix():
					p.changeState(stateHash, 1)
				case p.isSearchPrefix():
					p.changeState(stateSearch, 1)
				default:
					p.changeState(statePathname, 0)
				}

				p.tokenIndex += p.tokenIncrement

				continue

			case stateAuthority:
				p.rewindAndSetState(stateHostname)
				p.tokenIndex += p.tokenIncrement

				continue
			}

			p.changeState(stateDone, 0)

			break
		}

		if p.isGroupOpen() {
			p.groupDepth++
			p.tokenIndex += p.tokenIncrement

			continue
		}

		if p.groupDepth > 0 {
			if !p.isGroupClose() {
				p.tokenIndex += p.tokenIncrement

				continue
			}

			p.groupDepth--
		}

		p.step()
		p.tokenIndex += p.tokenIncrement
	}

	if p.result.Hostname != nil && p.result.Port == nil {
		p.result.Port = new(string)
	}
}

func (p *constructorStringParser) step() {
	switch p.state {
	case stateInit:
		if p.isProtocolSuffix() {
			p.rewindAndSetState(stateProtocol)
		}

	case stateProtocol:
		if !p.isProtocolSuffix() {
			return
		}

		p.computeProtocolMatchesSpecialScheme()

		next, skip := statePathname, 1
		if p.nextIsAuthoritySlashes() {
			next, skip = stateAuthority, 3
		} else if p.protocolMatchesSpecialScheme {
			next = stateAuthority
		}

		p.changeState(next, skip)

	case stateAuthority:
		if p.isIdentityTerminator() {
			p.rewindAndSetState(stateUsername)
		} else if p.isPathnameStart() || p.isSearchPrefix() || p.isHashPrefix() {
			p.rewindAndSetState(stateHostname)
		}

	case stateUsername:
		if p.isPasswordPrefix() {
			p.changeState(statePassword, 1)
		} else if p.isIdentityTerminator() {
			p.changeState(stateHostname, 1)
		}

	case statePassword:
		if p.isIdentityTerminator() {
			p.changeState(stateHostname, 1)
		}

	case stateHostname:
		switch {
		case p.isIPv6Open():
			p.hostnameIPv6BracketDepth++
		case p.isIPv6Close():
			p.hostnameIPv6BracketDepth--
		case p.isPortPrefix() && p.hostnameIPv6BracketDepth == 0:
			p.changeState(statePort, 1)
		case p.isPathnameStart():
			p.changeState(statePathname, 0)
		case p.isSearchPrefix():
			p.changeState(stateSearch, 1)
		case p.isHashPrefix():
			p.changeState(stateHash, 1)
		}

	case statePort:
		switch {
		case p.isPathnameStart():
			p.changeState(statePathname, 0)
		case p.isSearchPrefix():
			p.changeState(stateSearch, 1)
		case p.isHashPrefix():
			p.changeState(stateHash, 1)
		}

	case statePathname:
		if p.isSearchPrefix() {
			p.changeState(stateSearch, 1)
		} else if p.isHashPrefix() {
			p.changeState(stateHash, 1)
		}

	case stateSearch:
		if p.isHashPrefix() {
			p.changeState(stateHash, 1)
		}
	}
}

// https://urlpattern.spec.whatwg.org/#change-state
func (p *constructorStringParser) changeState(newState parserState, skip int) {
	switch p.state {
	case stateInit, stateAuthority, stateDone:
	default:
		p.setComponent(p.state, p.makeComponentString())
	}

	// components skipped over by the transition get their empty defaults
	if p.state != stateInit && newState != stateDone {
		if p.state <= statePassword && newState >= statePort && p.result.Hostname == nil {
			p.result.Hostname = new(string)
		}

		if p.state <= statePort && newState >= stateSearch && p.result.Pathname == nil {
			pathname := ""
			if p.protocolMatchesSpecialScheme {
				pathname = "/"
			}
			p.result.Pathname = &pathname
		}

		if p.state <= statePathname && newState == stateHash && p.result.Search == nil {
			p.result.Search = new(string)
		}
	}

	p.state = newState
	p.tokenIndex += skip
	p.componentStart = p.tokenIndex
	p.tokenIncrement = 0
}

func (p *constructorStringParser) setComponent(s parserState, value string) {
	switch s {
	case stateProtocol:
		p.result.Protocol = &value
	case stateUsername:
		p.result.Username = &value
	case statePassword:
		p.result.Password = &value
	case stateHostname:
		p.result.Hostname = &value
	case statePort:
		p.result.Port = &value
	case statePathname:
		p.result.Pathname = &value
	case stateSearch:
		p.result.Search = &value
	case stateHash:
		p.result.Hash = &value
	}
}

func (p *constructorStringParser) rewind() {
	p.tokenIndex = p.componentStart
	p.tokenIncrement = 0
}

func (p *constructorStringParser) rewindAndSetState(s parserState) {
	p.rewind()
	p.state = s
}

// https://urlpattern.spec.whatwg.org/#get-a-safe-token
func (p *constructorStringParser) safeToken(index int) token {
	if index < len(p.tokens) {
		return p.tokens[index]
	}

	return p.tokens[len(p.tokens)-1]
}

// https://urlpattern.spec.whatwg.org/#is-a-non-special-pattern-char
func (p *constructorStringParser) isNonSpecialPatternChar(index int, value string) bool {
	t := p.safeToken(index)
	if t.value != value {
		return false
	}

	return t.tType == tokenChar || t.tType == tokenEscapedChar || t.tType == tokenInvalidChar
}

func (p *constructorStringParser) isProtocolSuffix() bool {
	return p.isNonSpecialPatternChar(p.tokenIndex, ":")
}

func (p *constructorStringParser) nextIsAuthoritySlashes() bool {
	return p.isNonSpecialPatternChar(p.tokenIndex+1, "/") && p.isNonSpecialPatternChar(p.tokenIndex+2, "/")
}

func (p *constructorStringParser) isIdentityTerminator() bool {
	return p.isNonSpecialPatternChar(p.tokenIndex, "@")
}

func (p *constructorStringParser) isPasswordPrefix() bool {
	return p.isNonSpecialPatternChar(p.tokenIndex, ":")
}

func (p *constructorStringParser) isPortPrefix() bool {
	return p.isNonSpecialPatternChar(p.tokenIndex, ":")
}

func (p *constructorStringParser) isPathnameStart() bool {
	return p.isNonSpecialPatternChar(p.tokenIndex, "/")
}

// https://urlpattern.spec.whatwg.org/#is-a-search-prefix
func (p *constructorStringParser) isSearchPrefix() bool {
	if p.isNonSpecialPatternChar(p.tokenIndex, "?") {
		return true
	}

	if p.tokens[p.tokenIndex].value != "?" {
		return false
	}

	// a "?" right after a group is a modifier, not a search prefix
	if p.tokenIndex == 0 {
		return true
	}

	switch p.safeToken(p.tokenIndex - 1).tType {
	case tokenName, tokenRegexp, tokenClose, tokenAsterisk:
		return false
	}

	return true
}

func (p *constructorStringParser) isHashPrefix() bool {
	return p.isNonSpecialPatternChar(p.tokenIndex, "#")
}

func (p *constructorStringParser) isGroupOpen() bool {
	return p.tokens[p.tokenIndex].tType == tokenOpen
}

func (p *constructorStringParser) isGroupClose() bool {
	return p.tokens[p.tokenIndex].tType == tokenClose
}

func (p *constructorStringParser) isIPv6Open() bool {
	return p.isNonSpecialPatternChar(p.tokenIndex, "[")
}

func (p *constructorStringParser) isIPv6Close() bool {
	return p.isNonSpecialPatternChar(p.tokenIndex, "]")
}

// https://urlpattern.spec.whatwg.org/#make-a-component-string
func (p *constructorStringParser) makeComponentString() string {
	end := p.tokens[p.tokenIndex].index
	start := p.safeToken(p.componentStart).index

	return p.input.Slice(start, end)
}

// https://urlpattern.spec.whatwg.org/#compute-protocol-matches-a-special-scheme-flag
//
// A protocol that does not compile is simply not special; the error
// surfaces later when the protocol component itself is compiled.
func (p *constructorStringParser) computeProtocolMatchesSpecialScheme() {
	protocol, err := compileComponent(p.makeComponentString(), canonicalizeProtocol, defaultOptions)
	if err != nil {
		return
	}

	p.protocolMatchesSpecialScheme = protocol.matchesSpecialScheme()
}
