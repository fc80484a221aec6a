package dingalert

import "encoding/json"

// Message is a payload that can be delivered to a robot webhook. The set
// of implementations is fixed by the DingTalk robot message schema; each
// variant marshals to an object carrying a "msgtype" discriminator and a
// nested object with the variant's fields.
type Message interface {
	wire() any
}

// Mention instructs the chat client to notify specific members of the
// group chat by mobile number, or everyone at once. A zero Mention adds
// nothing to the payload.
type Mention struct {
	AtAll     bool
	AtMobiles []string
}

type wireMention struct {
	AtMobiles []string `json:"atMobiles,omitempty"`
	IsAtAll   bool     `json:"isAtAll"`
}

func (m Mention) wire() *wireMention {
	if !m.AtAll && len(m.AtMobiles) == 0 {
		return nil
	}
	return &wireMention{AtMobiles: m.AtMobiles, IsAtAll: m.AtAll}
}

// TextMessage is a plain text message
type TextMessage struct {
	Content string
	At      Mention
}

// NewTextMessage creates a text message with the given content
func NewTextMessage(content string) *TextMessage {
	return &TextMessage{Content: content}
}

// AtAll marks the message to notify everyone in the chat
func (m *TextMessage) AtAll() *TextMessage {
	m.At.AtAll = true
	return m
}

// AtMobiles adds mobile numbers to notify
func (m *TextMessage) AtMobiles(mobiles ...string) *TextMessage {
	m.At.AtMobiles = append(m.At.AtMobiles, mobiles...)
	return m
}

type textBody struct {
	Content string `json:"content"`
}

type wireText struct {
	MsgType string       `json:"msgtype"`
	Text    textBody     `json:"text"`
	At      *wireMention `json:"at,omitempty"`
}

func (m *TextMessage) wire() any {
	return wireText{MsgType: "text", Text: textBody{Content: m.Content}, At: m.At.wire()}
}

// MarshalJSON renders the message in the robot webhook wire format
func (m *TextMessage) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.wire())
}

// MarkdownMessage is a message rendered from markdown source. Title is
// shown in the conversation list, Text is the markdown body.
type MarkdownMessage struct {
	Title string
	Text  string
	At    Mention
}

// NewMarkdownMessage creates a markdown message with the given title and body
func NewMarkdownMessage(title, text string) *MarkdownMessage {
	return &MarkdownMessage{Title: title, Text: text}
}

// AtAll marks the message to notify everyone in the chat
func (m *MarkdownMessage) AtAll() *MarkdownMessage {
	m.At.AtAll = true
	return m
}

// AtMobiles adds mobile numbers to notify
func (m *MarkdownMessage) AtMobiles(mobiles ...string) *MarkdownMessage {
	m.At.AtMobiles = append(m.At.AtMobiles, mobiles...)
	return m
}

type markdownBody struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type wireMarkdown struct {
	MsgType  string       `json:"msgtype"`
	Markdown markdownBody `json:"markdown"`
	At       *wireMention `json:"at,omitempty"`
}

func (m *MarkdownMessage) wire() any {
	return wireMarkdown{MsgType: "markdown", Markdown: markdownBody{Title: m.Title, Text: m.Text}, At: m.At.wire()}
}

// MarshalJSON renders the message in the robot webhook wire format
func (m *MarkdownMessage) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.wire())
}

// LinkMessage is a hyperlink card: a title and teaser text that jump to
// MessageURL, with an optional preview picture.
type LinkMessage struct {
	Title      string
	Text       string
	MessageURL string
	PicURL     string
}

// NewLinkMessage creates a link message
func NewLinkMessage(title, text, messageURL, picURL string) *LinkMessage {
	return &LinkMessage{Title: title, Text: text, MessageURL: messageURL, PicURL: picURL}
}

type linkBody struct {
	Title      string `json:"title"`
	Text       string `json:"text"`
	MessageURL string `json:"messageUrl"`
	PicURL     string `json:"picUrl"`
}

func (m *LinkMessage) wire() any {
	return struct {
		MsgType string   `json:"msgtype"`
		Link    linkBody `json:"link"`
	}{"link", linkBody{Title: m.Title, Text: m.Text, MessageURL: m.MessageURL, PicURL: m.PicURL}}
}

// MarshalJSON renders the message in the robot webhook wire format
func (m *LinkMessage) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.wire())
}

// ActionCardButton is one independent jump button on an action card
type ActionCardButton struct {
	Title     string `json:"title"`
	ActionURL string `json:"actionURL"`
}

// ActionCardMessage is a card with either a single whole-card button
// (SingleTitle/SingleURL) or a list of independent buttons (Btns). The
// two modes are mutually exclusive on the wire: when Btns is non-empty
// the single-button fields are not emitted.
type ActionCardMessage struct {
	Title          string
	Text           string
	BtnOrientation string
	SingleTitle    string
	SingleURL      string
	Btns           []ActionCardButton
}

// NewActionCardMessage creates an action card with the given title and
// markdown body; buttons are set through the exported fields or AddButton
func NewActionCardMessage(title, text string) *ActionCardMessage {
	return &ActionCardMessage{Title: title, Text: text}
}

// AddButton appends an independent button to the card
func (m *ActionCardMessage) AddButton(title, actionURL string) *ActionCardMessage {
	m.Btns = append(m.Btns, ActionCardButton{Title: title, ActionURL: actionURL})
	return m
}

type actionCardBody struct {
	Title          string             `json:"title"`
	Text           string             `json:"text"`
	BtnOrientation string             `json:"btnOrientation,omitempty"`
	SingleTitle    string             `json:"singleTitle,omitempty"`
	SingleURL      string             `json:"singleURL,omitempty"`
	Btns           []ActionCardButton `json:"btns,omitempty"`
}

func (m *ActionCardMessage) wire() any {
	body := actionCardBody{Title: m.Title, Text: m.Text, BtnOrientation: m.BtnOrientation}
	if len(m.Btns) > 0 {
		body.Btns = m.Btns
	} else {
		body.SingleTitle = m.SingleTitle
		body.SingleURL = m.SingleURL
	}
	return struct {
		MsgType    string         `json:"msgtype"`
		ActionCard actionCardBody `json:"actionCard"`
	}{"actionCard", body}
}

// MarshalJSON renders the message in the robot webhook wire format
func (m *ActionCardMessage) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.wire())
}

// FeedCardLink is one entry of a feed card
type FeedCardLink struct {
	Title      string `json:"title"`
	MessageURL string `json:"messageURL"`
	PicURL     string `json:"picURL"`
}

// FeedCardMessage is a list of linked articles rendered as a feed
type FeedCardMessage struct {
	Links []FeedCardLink
}

// NewFeedCardMessage creates a feed card with the given links
func NewFeedCardMessage(links ...FeedCardLink) *FeedCardMessage {
	return &FeedCardMessage{Links: links}
}

type feedCardBody struct {
	Links []FeedCardLink `json:"links"`
}

func (m *FeedCardMessage) wire() any {
	links := m.Links
	if links == nil {
		links = []FeedCardLink{}
	}
	return struct {
		MsgType  string       `json:"msgtype"`
		FeedCard feedCardBody `json:"feedCard"`
	}{"feedCard", feedCardBody{Links: links}}
}

// MarshalJSON renders the message in the robot webhook wire format
func (m *FeedCardMessage) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.wire())
}
