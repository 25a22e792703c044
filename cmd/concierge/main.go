// Terminal client for the concierge chat endpoint. Drives the same contract
// as the site widget: capped history, transcript persisted locally, and a
// lead mini-form when the assistant routes the conversation there.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"

	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/widget"
)

var (
	serverURL  = flag.String("server", "http://localhost:8080", "Concierge API base URL")
	transcript = flag.String("transcript", defaultTranscriptPath(), "Transcript file (empty to disable persistence)")
)

func defaultTranscriptPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ftd_concierge.json")
}

func main() {
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("\nShutting down...")
		cancel()
		os.Exit(0)
	}()

	var opts []widget.Option
	if *transcript != "" {
		opts = append(opts, widget.WithTranscript(*transcript))
	}
	conv := widget.NewConversation(*serverURL, opts...)

	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Println(boldGreen("Fee's Concierge"))
	fmt.Printf("Connected to %s\n", boldCyan(*serverURL))
	fmt.Println("Type your message and press Enter. Type 'exit' or press Ctrl+C to quit.")
	fmt.Println()

	for _, msg := range conv.History() {
		printMessage(string(msg.Role), msg.Content, boldGreen, boldCyan)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(boldGreen("You: "))
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			break
		}

		reply, wantsLead, err := conv.Send(ctx, input)
		if err != nil {
			fmt.Println(red("Error: " + err.Error()))
			continue
		}

		fmt.Printf("%s %s\n", boldCyan("Concierge:"), reply)

		if wantsLead {
			runLeadForm(ctx, conv, scanner, boldGreen, red)
		}
	}
}

func printMessage(role, content string, boldGreen, boldCyan func(a ...interface{}) string) {
	switch role {
	case "user":
		fmt.Printf("%s %s\n", boldGreen("You:"), content)
	case "assistant":
		fmt.Printf("%s %s\n", boldCyan("Concierge:"), content)
	}
}

func runLeadForm(ctx context.Context, conv *widget.Conversation, scanner *bufio.Scanner, boldGreen, red func(a ...interface{}) string) {
	fmt.Println("Let's get you routed. Leave either field blank to skip.")

	fmt.Print(boldGreen("Email: "))
	if !scanner.Scan() {
		return
	}
	email := strings.TrimSpace(scanner.Text())
	if email == "" {
		return
	}

	fmt.Print(boldGreen("Timeline: "))
	if !scanner.Scan() {
		return
	}
	timeline := strings.TrimSpace(scanner.Text())
	if timeline == "" {
		return
	}

	if err := conv.SubmitLead(ctx, email, timeline); err != nil {
		fmt.Println(red("Could not submit: " + err.Error()))
		return
	}
	fmt.Println("Done — expect a reply shortly.")
}
