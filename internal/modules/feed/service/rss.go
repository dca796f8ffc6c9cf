package service

import (
	"encoding/xml"

	"github.com/gorilla/feeds"
	"github.com/reshetovitsme/quote-feed/internal/modules/quote/domain"
)

// gorilla/feeds escapes <description>; quote bodies go out verbatim in CDATA
// instead, so the RSS document is assembled from these types. encoding/xml
// does not check cdata text, so characters XML forbids are replaced first.

type cdata struct {
	Text string `xml:",cdata"`
}

type rssItem struct {
	XMLName     xml.Name `xml:"item"`
	Title       string   `xml:"title"`
	Link        string   `xml:"link,omitempty"`
	Description cdata    `xml:"description"`
	Guid        *feeds.RssGuid
	PubDate     string `xml:"pubDate,omitempty"`
}

type rssChannel struct {
	XMLName       xml.Name   `xml:"channel"`
	Title         string     `xml:"title"`
	Link          string     `xml:"link"`
	Description   string     `xml:"description"`
	PubDate       string     `xml:"pubDate,omitempty"`
	LastBuildDate string     `xml:"lastBuildDate,omitempty"`
	Items         []*rssItem `xml:"item"`
}

type rssDocument struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel *rssChannel
}

// FeedXml implements feeds.XmlFeed.
func (d *rssDocument) FeedXml() interface{} {
	return d
}

func newRSSDocument(feed *feeds.Feed) *rssDocument {
	channel := (&feeds.Rss{Feed: feed}).RssFeed()

	doc := &rssDocument{
		Version: "2.0",
		Channel: &rssChannel{
			Title:         channel.Title,
			Link:          channel.Link,
			Description:   channel.Description,
			PubDate:       channel.PubDate,
			LastBuildDate: channel.LastBuildDate,
			Items:         make([]*rssItem, 0, len(channel.Items)),
		},
	}

	for _, item := range channel.Items {
		doc.Channel.Items = append(doc.Channel.Items, &rssItem{
			Title:       item.Title,
			Link:        item.Link,
			Description: cdata{Text: domain.SanitizeXMLText(item.Description)},
			Guid:        item.Guid,
			PubDate:     item.PubDate,
		})
	}

	return doc
}
