// Package client provides the shop's customer record, referenced by orders
// and appointments.
package client

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/pkg/errs"
	"repairshop/internal/pkg/guard"
)

const (
	maxNameLength  = 200
	maxPhoneLength = 20
)

var ErrClientIsNotConstructed = errors.New("Client must be created via NewClient constructor")

// Client is a customer of the shop. Name and phone are required; email and
// notes are optional.
type Client struct {
	id        kernel.UUID
	name      string
	phone     string
	email     string
	notes     string
	createdAt time.Time
	guard     guard.ConstructorGuard
}

func NewClient(id kernel.UUID, name, phone, email, notes string, now time.Time) (*Client, error) {
	return RestoreClient(id, name, phone, email, notes, now)
}

func RestoreClient(id kernel.UUID, name, phone, email, notes string, createdAt time.Time) (*Client, error) {
	c := &Client{
		notes:     strings.TrimSpace(notes),
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		c.setName(name),
		c.setPhone(phone),
		c.setEmail(email),
	); err != nil {
		return nil, err
	}
	c.id = id

	return c, nil
}

func (c *Client) Validate() error {
	if c == nil {
		return ErrClientIsNotConstructed
	}
	return c.guard.Validate(ErrClientIsNotConstructed)
}

func (c *Client) ID() kernel.UUID { return c.id }
func (c *Client) Name() string { return c.name }
func (c *Client) Phone() string { return c.phone }
func (c *Client) Email() string { return c.email }
func (c *Client) Notes() string { return c.notes }
func (c *Client) CreatedAt() time.Time { return c.createdAt }

func (c *Client) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if n := utf8.RuneCountInString(name); n > maxNameLength {
		return errs.NewValueIsInvalidErrorWithCause("name", fmt.Errorf("%d characters exceeds %d", n, maxNameLength))
	}
	c.name = name
	return nil
}

func (c *Client) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	if n := utf8.RuneCountInString(phone); n > maxPhoneLength {
		return errs.NewValueIsInvalidErrorWithCause("phone", fmt.Errorf("%d characters exceeds %d", n, maxPhoneLength))
	}
	c.phone = phone
	return nil
}

func (c *Client) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not a bare e-mail address", email))
	}
	c.email = email
	return nil
}
