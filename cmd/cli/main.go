// CLI tool for sending DingTalk robot alerts
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	dingalert "github.com/MK-Morse-SMS/DingTalk-Alert"
)

func main() {
	var (
		msgType   = flag.String("type", "text", "Message type: text, markdown or link")
		message   = flag.String("message", "", "Message content, markdown body or link text (required)")
		title     = flag.String("title", "", "Title for markdown and link messages")
		url       = flag.String("url", "", "Target URL for link messages")
		picURL    = flag.String("pic", "", "Preview picture URL for link messages")
		atAll     = flag.Bool("at-all", false, "Notify everyone in the chat")
		atMobiles = flag.String("at-mobiles", "", "Comma-separated mobile numbers to notify")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		printUsage()
		return
	}

	if *message == "" {
		fmt.Println("Error: message is required")
		printUsage()
		os.Exit(1)
	}

	// Load configuration from environment
	config := dingalert.LoadConfigFromEnv()

	// Validate configuration
	if err := config.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Initialize module
	module, err := dingalert.NewDingAlertModule(config)
	if err != nil {
		log.Fatalf("Failed to initialize DingAlert: %v", err)
	}

	mention := dingalert.Mention{AtAll: *atAll}
	if *atMobiles != "" {
		mention.AtMobiles = strings.Split(*atMobiles, ",")
	}

	var msg dingalert.Message
	switch *msgType {
	case "text":
		m := dingalert.NewTextMessage(*message)
		m.At = mention
		msg = m
	case "markdown":
		if *title == "" {
			log.Fatal("Error: markdown messages require -title")
		}
		m := dingalert.NewMarkdownMessage(*title, *message)
		m.At = mention
		msg = m
	case "link":
		if *title == "" || *url == "" {
			log.Fatal("Error: link messages require -title and -url")
		}
		msg = dingalert.NewLinkMessage(*title, *message, *url, *picURL)
	default:
		log.Fatalf("Error: unknown message type %q", *msgType)
	}

	// Send alert
	fmt.Printf("📨 Sending %s message...\n", *msgType)
	if err := module.Robot().Send(msg); err != nil {
		log.Fatalf("❌ Failed to send message: %v", err)
	}

	fmt.Println("✅ Message sent successfully!")
}

func printUsage() {
	fmt.Println("DingAlert CLI Tool")
	fmt.Println("==================")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  dingalert-cli -message 'Hello World'")
	fmt.Println("  dingalert-cli -type markdown -title 'Release' -message '## shipped'")
	fmt.Println("  dingalert-cli -type link -title 'Docs' -message 'read this' -url https://example.com")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DINGTALK_WEBHOOK_URL       Full robot webhook URL")
	fmt.Println("  DINGTALK_ACCESS_TOKEN      Robot access token (alternative to the URL)")
	fmt.Println("  DINGTALK_SECRET            Signing secret, when the robot uses signature security")
	fmt.Println("  DINGTALK_CREDENTIALS_FILE  Path to a credentials JSON file")
}
