// Package widget is a fixture SDK product used by the provider tests.
// Its API follows the CRUD prefix convention the generator discovers.
package widget

import (
	"errors"
	"time"

	"github.com/scaleway/ansible-modgen/modgen/provider/testdata/scw"
)

// WidgetStatus is the state of a widget.
type WidgetStatus string

const (
	WidgetStatusError WidgetStatus = "error"
	WidgetStatusReady WidgetStatus = "ready"
)

// WidgetSpec is a nested configuration object.
type WidgetSpec struct {
	Shape string `json:"shape"`
	Sides int32  `json:"sides"`
}

// Widget is the resource managed by this API.
type Widget struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Status    WidgetStatus      `json:"status"`
	Tags      []string          `json:"tags"`
	Size      *uint64           `json:"size"`
	Spec      *WidgetSpec       `json:"spec"`
	Metadata  map[string]string `json:"metadata"`
	CreatedAt *time.Time        `json:"created_at"`
}

type CreateWidgetRequest struct {
	Region string   `json:"region"`
	Name   string   `json:"name"`
	Tags   []string `json:"tags"`
	Size   *uint64  `json:"size"`

	// Internal is client-side state and never part of the wire schema.
	Internal string `json:"-"`
}

type GetWidgetRequest struct {
	Region   string `json:"region"`
	WidgetID string `json:"widget_id"`
}

type UpdateWidgetRequest struct {
	Region   string  `json:"region"`
	WidgetID string  `json:"widget_id"`
	Name     *string `json:"name"`
}

type DeleteWidgetRequest struct {
	Region   string `json:"region"`
	WidgetID string `json:"widget_id"`
}

type ListWidgetsRequest struct {
	Region string  `json:"region"`
	Name   *string `json:"name"`
}

type ListWidgetsResponse struct {
	TotalCount uint32    `json:"total_count"`
	Widgets    []*Widget `json:"widgets"`
}

type WaitForWidgetRequest struct {
	Region   string              `json:"region"`
	WidgetID string              `json:"widget_id"`
	Options  *scw.WaitForOptions `json:"options"`
}

// Gadget has no delete method, so it is never emitted as a resource.
type Gadget struct {
	ID string `json:"id"`
}

type CreateGadgetRequest struct {
	Name string `json:"name"`
}

type GetGadgetRequest struct {
	GadgetID string `json:"gadget_id"`
}

// Hook's get method carries a field the generator cannot map.
type Hook struct {
	ID string `json:"id"`
}

type CreateHookRequest struct {
	Name string `json:"name"`
}

type GetHookRequest struct {
	HookID   string `json:"hook_id"`
	Callback func() `json:"callback"`
}

type DeleteHookRequest struct {
	HookID string `json:"hook_id"`
}

// API exposes widget operations.
type API struct {
	client *scw.Client
}

// NewAPI returns an API bound to the given client.
func NewAPI(client *scw.Client) *API {
	return &API{client: client}
}

var errNotImplemented = errors.New("testdata API is not callable")

func (s *API) CreateWidget(req *CreateWidgetRequest, opts ...scw.RequestOption) (*Widget, error) {
	return nil, errNotImplemented
}

func (s *API) GetWidget(req *GetWidgetRequest, opts ...scw.RequestOption) (*Widget, error) {
	return nil, errNotImplemented
}

func (s *API) UpdateWidget(req *UpdateWidgetRequest, opts ...scw.RequestOption) (*Widget, error) {
	return nil, errNotImplemented
}

func (s *API) DeleteWidget(req *DeleteWidgetRequest, opts ...scw.RequestOption) error {
	return errNotImplemented
}

func (s *API) ListWidgets(req *ListWidgetsRequest, opts ...scw.RequestOption) (*ListWidgetsResponse, error) {
	return nil, errNotImplemented
}

func (s *API) ListWidgetsAll(req *ListWidgetsRequest, opts ...scw.RequestOption) ([]*Widget, error) {
	return nil, errNotImplemented
}

func (s *API) WaitForWidget(req *WaitForWidgetRequest, opts ...scw.RequestOption) (*Widget, error) {
	return nil, errNotImplemented
}

func (s *API) CreateGadget(req *CreateGadgetRequest, opts ...scw.RequestOption) (*Gadget, error) {
	return nil, errNotImplemented
}

func (s *API) GetGadget(req *GetGadgetRequest, opts ...scw.RequestOption) (*Gadget, error) {
	return nil, errNotImplemented
}

func (s *API) CreateHook(req *CreateHookRequest, opts ...scw.RequestOption) (*Hook, error) {
	return nil, errNotImplemented
}

func (s *API) GetHook(req *GetHookRequest, opts ...scw.RequestOption) (*Hook, error) {
	return nil, errNotImplemented
}

func (s *API) DeleteHook(req *DeleteHookRequest, opts ...scw.RequestOption) error {
	return errNotImplemented
}
