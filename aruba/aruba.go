// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

package aruba

import (
	"context"
	"crypto/tls"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

var (
	ErrLoginFailed = errors.New("login failed")
	ErrInvalidXML  = errors.New("response is not a valid XML element")
	ErrNoTable     = errors.New("response does not contain a table")
)

const (
	commandPath = "/screens/cmnutil/execCommandReturnResult.xml"
	loginPath   = "/screens/wms/wms.login"

	sessionCookie = "SESSION"
)

type Options struct {
	Address  string
	Username string
	Password string
	// VerifyTLS enables certificate verification.
	VerifyTLS bool
	// BaseURL overrides https://<Address>:4343.
	BaseURL string
	Timeout time.Duration
}

// Client talks to the management interface of an Aruba controller.
type Client struct {
	base     *url.URL
	username string
	password string
	http     *http.Client
	now      func() time.Time
}

func New(opts Options) (*Client, error) {
	raw := opts.BaseURL
	if raw == "" {
		if opts.Address == "" {
			return nil, errors.New("controller address required")
		}
		raw = "https://" + opts.Address + ":4343"
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid controller URL: %w", err)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: !opts.VerifyTLS}

	return &Client{
		base:     base,
		username: opts.Username,
		password: opts.Password,
		http:     &http.Client{Jar: jar, Transport: transport, Timeout: timeout},
		now:      time.Now,
	}, nil
}

func (c *Client) endpoint(path string) *url.URL {
	u := *c.base
	u.Path = path
	return &u
}

func (c *Client) session() string {
	for _, cookie := range c.http.Jar.Cookies(c.base) {
		if cookie.Name == sessionCookie {
			return cookie.Value
		}
	}
	return ""
}

// Request runs a CLI command and returns the raw response body.
func (c *Client) Request(ctx context.Context, command string) (string, error) {
	u := c.endpoint(commandPath)
	u.RawQuery = url.PathEscape(command) + "@@" + strconv.FormatInt(c.now().Unix(), 10) +
		"&UIDARUBA=" + c.session()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("command %q: %w", command, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("command %q: %w", command, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("command %q: unexpected status %s", command, resp.Status)
	}
	return string(body), nil
}

// RequestTable runs a command and returns the rows of its result table,
// without the header row.
func (c *Client) RequestTable(ctx context.Context, command string) ([][]string, error) {
	body, err := c.Request(ctx, command)
	if err != nil {
		return nil, err
	}
	return parseTable(body)
}

// RequestDict maps the first column of the result table to the second.
func (c *Client) RequestDict(ctx context.Context, command string) (map[string]string, error) {
	rows, err := c.RequestTable(ctx, command)
	if err != nil {
		return nil, err
	}

	dict := make(map[string]string, len(rows))
	for _, row := range rows {
		switch len(row) {
		case 0:
		case 1:
			dict[row[0]] = ""
		default:
			dict[row[0]] = row[1]
		}
	}
	return dict, nil
}

// Login reuses a live session when there is one.
func (c *Client) Login(ctx context.Context) error {
	if body, err := c.Request(ctx, "show roleinfo"); err == nil {
		if root, err := parseXML(body); err == nil && root.find("data").hasContent() {
			return nil
		}
	}

	form := url.Values{
		"opcode":  {"login"},
		"url":     {"/"},
		"needxml": {"0"},
		"uid":     {c.username},
		"passwd":  {c.password},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(loginPath).String(), strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}
	if !strings.Contains(string(body), "Authentication complete") {
		return ErrLoginFailed
	}

	slog.Debug("logged into controller", "controller", c.base.Host)
	return nil
}

// node is a generic XML element.
type node struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
	Nodes   []node `xml:",any"`
}

func (n *node) find(name string) *node {
	if n == nil {
		return nil
	}
	for i := range n.Nodes {
		if n.Nodes[i].XMLName.Local == name {
			return &n.Nodes[i]
		}
	}
	return nil
}

func (n *node) hasContent() bool {
	return n != nil && (len(n.Nodes) > 0 || strings.TrimSpace(n.Text) != "")
}

func parseXML(body string) (*node, error) {
	var root node
	if err := xml.Unmarshal([]byte(body), &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidXML, err)
	}
	return &root, nil
}

func parseTable(body string) ([][]string, error) {
	root, err := parseXML(body)
	if err != nil {
		return nil, err
	}

	table := root.find("t")
	if table == nil {
		return nil, ErrNoTable
	}
	if len(table.Nodes) == 0 {
		return [][]string{}, nil
	}

	rows := make([][]string, 0, len(table.Nodes)-1)
	for _, row := range table.Nodes[1:] {
		cells := make([]string, len(row.Nodes))
		for i, cell := range row.Nodes {
			cells[i] = strings.TrimSpace(cell.Text)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}
