package fakegoogle

import (
	"encoding/json"
	"strconv"
)

// The request shapes below mirror the subset of the Slides API the fake
// understands. They are decoded independently of the client library so an
// omitted field (e.g. insertionIndex) stays distinguishable from a zero one.

type batchRequest struct {
	Requests []request `json:"requests"`
}

type request struct {
	CreateSlide           *createSlideRequest           `json:"createSlide"`
	InsertText            *insertTextRequest            `json:"insertText"`
	DeleteObject          *objectRef                    `json:"deleteObject"`
	CreateVideo           *createVideoRequest           `json:"createVideo"`
	UpdateVideoProperties *updateVideoPropertiesRequest `json:"updateVideoProperties"`
}

type objectRef struct {
	ObjectID string `json:"objectId"`
}

type createSlideRequest struct {
	ObjectID             string   `json:"objectId"`
	InsertionIndex       *flexInt `json:"insertionIndex"`
	SlideLayoutReference *struct {
		PredefinedLayout string `json:"predefinedLayout"`
	} `json:"slideLayoutReference"`
	PlaceholderIDMappings []struct {
		ObjectID          string `json:"objectId"`
		LayoutPlaceholder *struct {
			Type  string  `json:"type"`
			Index flexInt `json:"index"`
		} `json:"layoutPlaceholder"`
	} `json:"placeholderIdMappings"`
}

type insertTextRequest struct {
	ObjectID string `json:"objectId"`
	Text     string `json:"text"`
}

type dimension struct {
	Magnitude float64 `json:"magnitude"`
	Unit      string  `json:"unit"`
}

type createVideoRequest struct {
	ObjectID          string `json:"objectId"`
	ID                string `json:"id"`
	Source            string `json:"source"`
	ElementProperties *struct {
		PageObjectID string `json:"pageObjectId"`
		Size         *struct {
			Width  *dimension `json:"width"`
			Height *dimension `json:"height"`
		} `json:"size"`
	} `json:"elementProperties"`
}

type updateVideoPropertiesRequest struct {
	ObjectID        string `json:"objectId"`
	VideoProperties *struct {
		AutoPlay bool `json:"autoPlay"`
	} `json:"videoProperties"`
	Fields string `json:"fields"`
}

// flexInt accepts both 3 and "3".
type flexInt int64

func (f *flexInt) UnmarshalJSON(b []byte) error {
	var n int64
	if err := json.Unmarshal(b, &n); err == nil {
		*f = flexInt(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}
