package directory

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spec-kit/user-directory/internal/domain"
)

const helpText = `commands:
  search [text]          filter by first or last name (no text clears)
  domain <name|all>      Sales, Finance, Marketing, IT, UI Designing, Management
  gender <name|all>      Male, Female
  available <yes|no|all>
  next | prev            move one page
  add <id>               add a user to the team
  team                   create the team from the selection
  close                  hide the team summary
  list                   show the current page
  reload                 fetch users again
  help
  quit`

// Console drives a Session from line-oriented commands.
type Console struct {
	session *Session
	fetcher Fetcher
	out     io.Writer
}

// NewConsole wires a console to session. fetcher serves the reload command.
func NewConsole(session *Session, fetcher Fetcher, out io.Writer) *Console {
	return &Console{session: session, fetcher: fetcher, out: out}
}

// Run reads commands from in until quit, EOF or ctx is done.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	c.renderPage()
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(c.out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if quit := c.Exec(ctx, scanner.Text()); quit {
			return nil
		}
	}
}

// Exec runs one command line and reports whether the console should stop.
func (c *Console) Exec(ctx context.Context, line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "":
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprintln(c.out, helpText)
	case "search":
		c.session.SetQuery(arg)
		c.renderPage()
	case "domain":
		d, ok := parseOrAll(arg, domain.ParseDomain)
		if !ok {
			fmt.Fprintf(c.out, "unknown domain %q\n", arg)
			return false
		}
		c.session.SetDomain(d)
		c.renderPage()
	case "gender":
		g, ok := parseOrAll(arg, domain.ParseGender)
		if !ok {
			fmt.Fprintf(c.out, "unknown gender %q\n", arg)
			return false
		}
		c.session.SetGender(g)
		c.renderPage()
	case "available":
		a, ok := ParseAvailability(arg)
		if !ok {
			fmt.Fprintf(c.out, "unknown availability %q\n", arg)
			return false
		}
		c.session.SetAvailability(a)
		c.renderPage()
	case "next":
		if !c.session.NextPage() {
			fmt.Fprintln(c.out, "already on the last page")
			return false
		}
		c.renderPage()
	case "prev":
		if !c.session.PrevPage() {
			fmt.Fprintln(c.out, "already on the first page")
			return false
		}
		c.renderPage()
	case "add":
		c.add(arg)
	case "team":
		c.renderUsers(c.session.CreateTeam())
		fmt.Fprintln(c.out, "(close to dismiss)")
	case "close":
		c.session.CloseTeam()
		c.renderPage()
	case "list":
		c.renderPage()
	case "reload":
		if err := c.session.Refresh(ctx, c.fetcher); err != nil {
			fmt.Fprintf(c.out, "reload failed: %v\n", err)
			return false
		}
		c.renderPage()
	default:
		fmt.Fprintf(c.out, "unknown command %q, try help\n", cmd)
	}
	return false
}

func (c *Console) add(arg string) {
	id, ok := domain.ParseID(arg)
	if !ok {
		fmt.Fprintf(c.out, "invalid id %q\n", arg)
		return
	}
	added, err := c.session.Select(id)
	switch {
	case errors.Is(err, ErrUnknownUser):
		fmt.Fprintf(c.out, "no user with id %d\n", id)
	case !added:
		fmt.Fprintf(c.out, "team already has a member with the same domain and availability as user %d\n", id)
	default:
		fmt.Fprintf(c.out, "added user %d, team size %d\n", id, len(c.session.Selection()))
	}
}

func (c *Console) renderPage() {
	c.renderUsers(c.session.Visible())

	prev, next := "«", "»"
	if !c.session.HasPrev() {
		prev = " "
	}
	if !c.session.HasNext() {
		next = " "
	}
	fmt.Fprintf(c.out, "%s page %d of %d (%d users) %s\n",
		prev, c.session.Page(), c.session.PageCount(), len(c.session.Filtered()), next)
}

func (c *Console) renderUsers(users []domain.User) {
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tGENDER\tDOMAIN\tAVAILABLE")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", u.ID, u.FullName(), u.Email, u.Gender, u.Domain, yesNo(u.Available))
	}
	_ = tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func parseOrAll[T ~string](arg string, parse func(string) (T, bool)) (T, bool) {
	switch strings.ToLower(arg) {
	case "", "all":
		var zero T
		return zero, true
	}
	return parse(arg)
}
