package centralbank

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"
	"github.com/wisespend/installment-service/internal/config"
)

// retailMargin is added on top of the central bank key rate to approximate
// the installment rate consumers are actually offered.
const retailMargin = 5.0

// cacheTTL bounds how often the bank endpoint is hit; the key rate changes a
// handful of times per year.
const cacheTTL = time.Hour

// Client fetches the central bank key rate over its SOAP endpoint. The
// calculator uses it to default the interest rate when a request omits one,
// so lookups are cached.
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger

	mu        sync.Mutex
	rate      float64
	fetchedAt time.Time
}

// NewClient initializes a new key-rate client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url:    cfg.KeyRateURL,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

// GetKeyRate returns the current key rate plus the retail margin, serving a
// cached value when it is fresh enough.
func (c *Client) GetKeyRate() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.fetchedAt.IsZero() && time.Since(c.fetchedAt) < cacheTTL {
		return c.rate, nil
	}

	body, err := c.fetch()
	if err != nil {
		return 0, err
	}
	rate, err := parseKeyRate(body)
	if err != nil {
		return 0, err
	}

	c.rate = rate + retailMargin
	c.fetchedAt = time.Now()
	c.log.Infof("Retrieved key rate: %.2f%% (including %.2f%% retail margin)", c.rate, retailMargin)
	return c.rate, nil
}

func (c *Client) fetch() ([]byte, error) {
	fromDate := time.Now().AddDate(0, 0, -30).Format("2006-01-02")
	toDate := time.Now().Format("2006-01-02")
	envelope := fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
		<soap12:Envelope xmlns:soap12="http://www.w3.org/2003/05/soap-envelope">
			<soap12:Body>
				<KeyRate xmlns="http://web.cbr.ru/">
					<fromDate>%s</fromDate>
					<ToDate>%s</ToDate>
				</KeyRate>
			</soap12:Body>
		</soap12:Envelope>`, fromDate, toDate)

	req, err := http.NewRequest("POST", c.url, bytes.NewBufferString(envelope))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/soap+xml; charset=utf-8")
	req.Header.Set("SOAPAction", "http://web.cbr.ru/KeyRate")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}
	c.log.Debugf("key rate XML response: %s", string(body))
	return body, nil
}

// parseKeyRate extracts the most recent rate from the SOAP diffgram.
func parseKeyRate(rawBody []byte) (float64, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return 0, fmt.Errorf("failed to parse XML: %v", err)
	}

	krElements := doc.FindElements("//diffgram/KeyRate/KR")
	if len(krElements) == 0 {
		return 0, fmt.Errorf("no key rate data found in XML")
	}
	rateElement := krElements[0].FindElement("./Rate")
	if rateElement == nil {
		return 0, fmt.Errorf("rate element not found in XML")
	}

	var rate float64
	if _, err := fmt.Sscanf(rateElement.Text(), "%f", &rate); err != nil {
		return 0, fmt.Errorf("failed to parse rate: %v", err)
	}
	return rate, nil
}
