//go:build ignore

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"Agora/internal/api/middleware"
)

// seed_demo populates a running server with posts, comments, likes and reports
// through the public API.
//
// Usage:
//
//	AGORA_JWT_SECRET=... AGORA_OWNER_DID=did:plc:owner go run scripts/seed_demo.go [baseURL]

var userNames = []string{
	"sarah_jenkins", "michael_chen", "jessica_rodriguez", "david_nguyen",
	"emily_williams", "james_patel", "ashley_garcia", "robert_kim",
}

var captions = []string{
	"Sunrise over the harbour this morning",
	"First attempt at sourdough, be kind",
	"The new bike lanes downtown are finally open",
	"Anyone else watching the meteor shower tonight?",
}

var commentTexts = []string{
	"Love this!",
	"Where was this taken?",
	"This made my day",
	"Great shot, what camera?",
	"Totally agree",
	"Not sure about this one",
}

type client struct {
	baseURL string
	secret  []byte
	issuer  string
}

func (c *client) call(did, path string, body interface{}, out interface{}) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	token, err := middleware.IssueToken(c.secret, c.issuer, did, time.Hour)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return fmt.Errorf("%s: %d %s: %s", path, resp.StatusCode, apiErr.Error, apiErr.Message)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func main() {
	baseURL := "http://localhost:8081"
	if len(os.Args) > 1 {
		baseURL = os.Args[1]
	}

	owner := os.Getenv("AGORA_OWNER_DID")
	secret := os.Getenv("AGORA_JWT_SECRET")
	if owner == "" || secret == "" {
		log.Fatal("AGORA_OWNER_DID and AGORA_JWT_SECRET must be set")
	}

	c := &client{baseURL: baseURL, secret: []byte(secret), issuer: os.Getenv("AGORA_JWT_ISSUER")}

	users := make([]string, len(userNames))
	for i, name := range userNames {
		users[i] = "did:plc:" + name
	}
	moderator := users[0]

	if err := c.call(owner, "/xrpc/social.agora.moderation.addModerator", map[string]string{"identity": moderator}, nil); err != nil {
		log.Fatalf("Failed to add moderator: %v", err)
	}
	fmt.Printf("Moderator: %s\n", moderator)

	var postIDs []int64
	for i, caption := range captions {
		var post struct {
			ID int64 `json:"id"`
		}
		author := users[(i+1)%len(users)]
		if err := c.call(author, "/xrpc/social.agora.post.create",
			map[string]string{"caption": caption, "mediaRef": fmt.Sprintf("demo-media-%d", i)}, &post); err != nil {
			log.Fatalf("Failed to create post: %v", err)
		}
		postIDs = append(postIDs, post.ID)
		fmt.Printf("Created post %d by %s\n", post.ID, author)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	commentCount, likeCount := 0, 0
	for _, postID := range postIDs {
		for _, user := range users {
			if rng.Intn(2) == 0 {
				if err := c.call(user, "/xrpc/social.agora.post.like", map[string]int64{"postId": postID}, nil); err != nil {
					log.Printf("Like failed: %v", err)
					continue
				}
				likeCount++
			}
			if rng.Intn(3) == 0 {
				body := map[string]interface{}{
					"postId":  postID,
					"content": commentTexts[rng.Intn(len(commentTexts))],
				}
				if err := c.call(user, "/xrpc/social.agora.comment.create", body, nil); err != nil {
					log.Printf("Comment failed: %v", err)
					continue
				}
				commentCount++
			}
		}
	}

	// Flag the last post and have the moderator take it down
	last := postIDs[len(postIDs)-1]
	if err := c.call(users[len(users)-1], "/xrpc/social.agora.moderation.report", map[string]int64{"postId": last}, nil); err != nil {
		log.Fatalf("Failed to report post: %v", err)
	}
	if err := c.call(moderator, "/xrpc/social.agora.moderation.removePost", map[string]int64{"postId": last}, nil); err != nil {
		log.Fatalf("Failed to remove post: %v", err)
	}

	fmt.Printf("\nSeeded %d posts, %d comments, %d likes; post %d removed by moderation\n",
		len(postIDs), commentCount, likeCount, last)
}
