package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/jwhwang/atmbank/pkg/app"
	"github.com/jwhwang/atmbank/pkg/config"
	"github.com/jwhwang/atmbank/pkg/domain"
	atmsvc "github.com/jwhwang/atmbank/pkg/service/atm"
)

// Interactive ATM terminal against the same core the HTTP server uses.
func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		color.Red("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	logger := app.SetupLogger(cfg.Log)
	deps, err := app.Setup(cfg, logger)
	if err != nil {
		color.Red("Failed to initialize: %v", err)
		os.Exit(1)
	}
	svc := atmsvc.New(deps.Uow, deps.Sessions, deps.Bus, deps.Logger)

	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Card number: ")
	cardNumber, err := readInt(reader)
	if err != nil {
		color.Red("Invalid card number: %v", err)
		os.Exit(1)
	}

	fmt.Print("PIN: ")
	pinBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		color.Red("Failed to read PIN: %v", err)
		os.Exit(1)
	}

	token, err := svc.SetSession(ctx, cardNumber, string(pinBytes))
	if err != nil {
		color.Red("Authentication failed: %v", err)
		os.Exit(1)
	}
	color.Green("Authenticated.")

	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "accounts":
			views, err := svc.GetAccounts(ctx, token, cardNumber)
			if err != nil {
				color.Red("Error: %v", err)
				continue
			}
			for _, v := range views {
				fmt.Printf("  %s  %s\n", color.CyanString("[%d] %s", v.AccountID, v.Name), color.GreenString("%d", v.Balance))
			}
		case "deposit", "withdraw":
			if len(fields) != 3 {
				color.Yellow("Usage: %s <account_id> <amount>", fields[0])
				continue
			}
			accountID, err1 := strconv.ParseInt(fields[1], 10, 64)
			amount, err2 := strconv.ParseInt(fields[2], 10, 64)
			if err1 != nil || err2 != nil {
				color.Yellow("Account id and amount must be integers")
				continue
			}
			action := string(domain.ActionDeposit)
			if fields[0] == "withdraw" {
				action = string(domain.ActionWithdrawal)
			}
			rec, err := svc.AccountAction(ctx, token, cardNumber, accountID, action, amount)
			if err != nil {
				color.Red("Error: %v", err)
				continue
			}
			color.Green("OK: record #%d, balance %d", rec.RecordIndex, rec.Balance)
		case "exit", "quit":
			return
		default:
			color.Yellow("Commands: accounts, deposit <id> <amount>, withdraw <id> <amount>, exit")
		}
	}
}

func readInt(reader *bufio.Reader) (int64, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(strings.TrimSpace(line), 10, 64)
}
