// Command console is the terminal front-end for the NetVest admin API. It
// renders the referral network as a tree or level listing, lists deposit
// and withdrawal requests with status/term filtering, and approves or
// rejects pending requests.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/netvest/console/internal/api"
	"github.com/netvest/console/internal/approvals"
	"github.com/netvest/console/internal/config"
	"github.com/netvest/console/internal/models"
	"github.com/netvest/console/internal/network"
	"github.com/netvest/console/internal/session"
)

const usage = `Usage: console <command> [flags]

Commands:
  network       Show the referral network tree
  levels        Show the network grouped by level
  deposits      List deposit requests
  withdrawals   List withdrawal requests
  approve       Approve a pending request (-kind, -id)
  reject        Reject a pending request (-kind, -id)

Common flags:
  -token    bearer token (defaults to API_TOKEN)
  -search   free-text search term
  -status   status filter: pending, approved, rejected, all
`

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.LoadConfig()
	command := os.Args[1]

	flags := flag.NewFlagSet(command, flag.ExitOnError)
	token := flags.String("token", cfg.API.Token, "bearer token")
	search := flags.String("search", "", "free-text search term")
	status := flags.String("status", "all", "status filter")
	kind := flags.String("kind", "deposit", "transaction kind: deposit or withdrawal")
	id := flags.String("id", "", "transaction id")
	flags.Parse(os.Args[2:])

	sess := session.FromToken(*token)
	if !sess.Valid() {
		log.Fatal("no valid session token: set API_TOKEN or pass -token")
	}

	client := api.NewClient(cfg.API.BaseURL)

	var err error
	switch command {
	case "network":
		err = showNetwork(client, sess, *search)
	case "levels":
		err = showLevels(client, sess)
	case "deposits":
		err = showTransactions(client, sess, models.KindDeposit, *status, *search)
	case "withdrawals":
		err = showTransactions(client, sess, models.KindWithdrawal, *status, *search)
	case "approve":
		err = resolve(client, sess, *kind, *id, models.StatusApproved)
	case "reject":
		err = resolve(client, sess, *kind, *id, models.StatusRejected)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		log.Fatal(err)
	}
}

// showNetwork renders the referral tree from the viewer's root code. With a
// search term active the result is a flat match list instead of a tree.
func showNetwork(client *api.Client, sess session.Session, term string) error {
	snapshot, err := client.LoadNetwork(sess)
	if err != nil {
		return err
	}

	fmt.Printf("Network: %d members (root code %s)\n", snapshot.TotalMembers, snapshot.RootReferralCode)

	if term != "" {
		for _, m := range network.Search(snapshot.TeamMembers, term) {
			fmt.Printf("  %s  level %d  %s\n", m.Email, m.Level, m.ReferralCode)
		}
		return nil
	}

	expansion := network.NewExpansion(snapshot.TeamMembers)
	printSubtree(snapshot.TeamMembers, snapshot.RootReferralCode, expansion, 1)
	return nil
}

// printSubtree prints the children of one referral code, descending only
// into expanded members.
func printSubtree(members []models.Member, code string, expansion *network.Expansion, depth int) {
	for _, m := range network.ChildrenOf(members, code) {
		marker := " "
		children := network.ChildrenOf(members, m.ReferralCode)
		if len(children) > 0 && !expansion.Expanded(m.ID) {
			marker = "+"
		}
		fmt.Printf("%*s%s %s (%s, %d recruits)\n", depth*2, "", marker, m.Email, m.ReferralCode, len(children))
		if expansion.Expanded(m.ID) {
			printSubtree(members, m.ReferralCode, expansion, depth+1)
		}
	}
}

// showLevels renders the network grouped by server-supplied level.
func showLevels(client *api.Client, sess session.Session) error {
	snapshot, err := client.LoadNetwork(sess)
	if err != nil {
		return err
	}

	groups := network.GroupByLevel(snapshot.TeamMembers)
	for _, level := range network.Levels(groups) {
		fmt.Printf("%s:\n", network.LevelLabel(level))
		for _, m := range groups[level] {
			fmt.Printf("  %s  %s  balance %.2f\n", m.Email, m.ReferralCode, m.Balance)
		}
	}
	return nil
}

// showTransactions lists one collection, filtered by status and term.
func showTransactions(client *api.Client, sess session.Session, kind models.Kind, status, term string) error {
	store := approvals.NewStore(client, kind)
	if err := store.Refresh(sess); err != nil {
		return err
	}

	filtered := approvals.Filter(store.Transactions(), approvals.FilterOptions{
		Status: models.Status(status),
		Term:   term,
	})

	for _, tx := range filtered {
		line := fmt.Sprintf("%s  %-9s  %8.2f  %s", tx.ID, tx.Status, tx.Amount, tx.User.Email)
		if tx.AccountDetails != nil {
			line += fmt.Sprintf("  %s %s", tx.AccountDetails.BankName, tx.AccountDetails.AccountNumber)
		} else if tx.TransactionID != "" {
			line += "  " + tx.TransactionID
		}
		fmt.Println(line)
	}
	fmt.Printf("%d of %d shown\n", len(filtered), len(store.Transactions()))
	return nil
}

// resolve approves or rejects one pending request.
func resolve(client *api.Client, sess session.Session, kindArg, id string, next models.Status) error {
	if id == "" {
		return fmt.Errorf("-id is required")
	}

	kind := models.Kind(kindArg)
	if kind != models.KindDeposit && kind != models.KindWithdrawal {
		return fmt.Errorf("unknown kind %q", kindArg)
	}

	store := approvals.NewStore(client, kind)
	if err := store.Refresh(sess); err != nil {
		return err
	}

	updated, err := store.SetStatus(sess, id, next)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s is now %s\n", kind, updated.ID, updated.Status)
	return nil
}
