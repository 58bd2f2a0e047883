package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophsocial/internal/common"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context, args []string) error
	Edit(ctx context.Context) error
	Follow(ctx context.Context, args []string) error
	Unfollow(ctx context.Context, args []string) error
	Connections(ctx context.Context) error
	Mutual(ctx context.Context, args []string) error
	Recommend(ctx context.Context) error
	Search(ctx context.Context, args []string) error
	Popular(ctx context.Context) error
}

const (
	helpGuest = "Available commands: register, login, search <term>, popular, help, exit"
	helpUser  = "Available commands: profile [username], edit, follow <username>, unfollow <username>, " +
		"connections, mutual <username>, recommend, search <term>, popular, logout, help, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a.
//
//	Not logged in:
//	  - register, login
//	  - search <term>, popular
//
//	Logged in:
//	  - profile [username]   show a profile, your own by default
//	  - edit                 change name and bio
//	  - follow <username>, unfollow <username>
//	  - connections          followers and following
//	  - mutual <username>    users followed by both of you
//	  - recommend            people followed by people you follow
//	  - search <term>, popular
//	  - logout
//
// Handler errors are printed and the loop continues, except fatal ones
// (see common.IsFatal), which are returned. The loop ends with a nil error
// on EOF or on "exit" / "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) error {
	for {
		printlnFn(fmt.Sprintf("gs %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return nil
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpUser)
			} else {
				printlnFn(helpGuest)
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "profile":
			cmdErr = a.Profile(ctx, args)
		case "edit":
			cmdErr = a.Edit(ctx)
		case "follow":
			cmdErr = a.Follow(ctx, args)
		case "unfollow":
			cmdErr = a.Unfollow(ctx, args)
		case "connections":
			cmdErr = a.Connections(ctx)
		case "mutual":
			cmdErr = a.Mutual(ctx, args)
		case "recommend":
			cmdErr = a.Recommend(ctx)
		case "search":
			cmdErr = a.Search(ctx, args)
		case "popular":
			cmdErr = a.Popular(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return nil

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			if common.IsFatal(cmdErr) {
				printlnFn(errorStyle.Render("Connection to the graph store lost: " + cmdErr.Error()))
				return cmdErr
			}
			printlnFn(errorStyle.Render("Error: " + cmdErr.Error()))
		}

		if err != nil {
			return nil
		}
	}
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
