package server

import "github.com/eternalApril/starlight/internal/resp"

func connectionCommands() []Registration {
	return []Registration{
		{Name: "PING", Handler: HandlerFunc(ping)},
		{Name: "QUIT", Handler: HandlerFunc(quit)},
	}
}

func ping(_ *Context, args *Parser) (resp.Value, error) {
	switch args.Remaining() {
	case 0:
		return resp.MakeSimpleString("PONG"), nil
	case 1:
		msg, err := args.NextBytes()
		if err != nil {
			return resp.Value{}, err
		}
		return resp.MakeBulkBytes(msg), nil
	}
	return resp.Value{}, &ArityError{Cmd: args.Command()}
}

// quit returns the close marker; the connection loop acknowledges with +OK
// and closes the peer.
func quit(_ *Context, args *Parser) (resp.Value, error) {
	if err := args.Exact(0); err != nil {
		return resp.Value{}, err
	}
	return resp.MakeExit(), nil
}
