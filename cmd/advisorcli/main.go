package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Terminal playground for the advisor API. Creates a session, then relays
// stdin lines as chat turns until EOF or "exit".

var baseURL = "http://localhost:3000/api"

type createSessionResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

type sendChatRequest struct {
	Chat string `json:"chat"`
}

type sendChatResponse struct {
	Data struct {
		Reply string `json:"reply"`
	} `json:"data"`
	Message string `json:"message"`
}

func main() {
	if v := os.Getenv("ADVISOR_BASE_URL"); v != "" {
		baseURL = v
	}

	color.Cyan("🎸 Luthier Advisor Playground")
	color.Cyan("Server: %s\n", baseURL)

	sessionID, err := createSession()
	if err != nil {
		color.Red("Failed to create session: %v", err)
		os.Exit(1)
	}
	color.Green("Session Created: %s", sessionID)
	fmt.Println("Type a question (or 'exit' to quit):")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "exit" {
			break
		}

		start := time.Now()
		reply, err := sendChat(sessionID, text)
		elapsed := time.Since(start)

		if err != nil {
			color.Red("Error: %v", err)
			continue
		}
		color.Yellow("LUTHIER (%v):", elapsed.Round(time.Millisecond))
		fmt.Println(reply)
	}
}

func createSession() (string, error) {
	resp, err := http.Post(baseURL+"/workshop/v1/sessions", "application/json", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("status %s: %s", resp.Status, string(body))
	}

	var out createSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Data.ID, nil
}

func sendChat(sessionID, text string) (string, error) {
	payload, _ := json.Marshal(sendChatRequest{Chat: text})

	resp, err := http.Post(
		baseURL+"/advisor/v1/sessions/"+sessionID+"/chat",
		"application/json",
		bytes.NewBuffer(payload),
	)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var out sendChatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("status %s: %s", resp.Status, string(body))
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %s: %s", resp.Status, out.Message)
	}
	return out.Data.Reply, nil
}
