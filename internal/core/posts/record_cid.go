package posts

import (
	"encoding/json"
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// recordPrefix builds CIDv1 identifiers over the raw JSON bytes of a post record
var recordPrefix = cid.Prefix{
	Version:  1,
	Codec:    cid.Raw,
	MhType:   multihash.SHA2_256,
	MhLength: -1,
}

// postRecord is the content-addressed part of a post.
// Counters and moderation state are excluded: they are not authored content.
type postRecord struct {
	Author   string `json:"author"`
	Caption  string `json:"caption"`
	MediaRef string `json:"mediaRef"`
}

// RecordCID computes the content identifier of a post record
func RecordCID(author, caption, mediaRef string) (string, error) {
	data, err := json.Marshal(postRecord{
		Author:   author,
		Caption:  caption,
		MediaRef: mediaRef,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode post record: %w", err)
	}

	c, err := recordPrefix.Sum(data)
	if err != nil {
		return "", fmt.Errorf("failed to hash post record: %w", err)
	}
	return c.String(), nil
}

// ViewCID computes the content identifier of a whole post snapshot.
// Unlike RecordCID it changes with counters and moderation state.
func ViewCID(p *Post) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode post view: %w", err)
	}

	c, err := recordPrefix.Sum(data)
	if err != nil {
		return "", fmt.Errorf("failed to hash post view: %w", err)
	}
	return c.String(), nil
}
