package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Unlock(ctx context.Context) error
	Lock(ctx context.Context) error
	Login(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Logout(ctx context.Context) error
	ShowProfile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	ShowPrefs(ctx context.Context) error
	SetPref(ctx context.Context, name, value string) error
	Status(ctx context.Context) error
	Reset(ctx context.Context) error
	Wipe(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the vigil CLI.
//
// It reads a line from the provided reader, parses the first token as the
// command, and dispatches to methods on 'a'. The loop exits on EOF
// or when the user types "exit" or "quit".
//
//	Always:
//	  - help            show available commands
//	  - unlock | lock   open or close secure storage
//	  - login           store a session from an access token
//	  - prefs           list UI preferences
//	  - set NAME VALUE  change a UI preference
//	  - status          list stored keys per tier
//	  - reset           drop the keyring and secure values (forgotten passphrase)
//	  - wipe            remove everything stored on this device
//	  - exit | quit     leave the program
//
//	Logged in:
//	  - whoami          show the stored session
//	  - profile         show the profile
//	  - editprofile     edit the profile
//	  - logout          clear session and profile
//
// Handler errors are printed and the loop continues. Commands that prompt
// read from the same reader, so piped input stays in order.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("vigil %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		err = nil
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, profile, editprofile, prefs, set, status, unlock, lock, reset, wipe, logout, exit")
			} else {
				printlnFn("Available commands: login, prefs, set, status, unlock, lock, reset, wipe, exit")
			}

		case "unlock":
			err = a.Unlock(ctx)

		case "lock":
			err = a.Lock(ctx)

		case "login":
			err = a.Login(ctx)

		case "whoami":
			err = a.WhoAmI(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "profile":
			err = a.ShowProfile(ctx)

		case "editprofile":
			err = a.EditProfile(ctx)

		case "prefs":
			err = a.ShowPrefs(ctx)

		case "set":
			if len(args) != 2 {
				printlnFn("Usage: set <preference> <value>")
				continue
			}
			err = a.SetPref(ctx, args[0], args[1])

		case "status":
			err = a.Status(ctx)

		case "reset":
			err = a.Reset(ctx)

		case "wipe":
			err = a.Wipe(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
