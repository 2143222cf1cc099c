package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/TristanBlackwell/twilly/internal/constants"
	internalhttp "github.com/TristanBlackwell/twilly/internal/http"
	"github.com/TristanBlackwell/twilly/pkg/twilio"
)

// ServerlessClient implements twilio.ServerlessClient.
type ServerlessClient struct {
	services     *ServerlessServicesClient
	environments *ServerlessEnvironmentsClient
	logs         *ServerlessLogsClient
}

// NewServerlessClient creates the Serverless resource clients.
func NewServerlessClient(httpClient *internalhttp.Client, baseURL string, maxPages int) *ServerlessClient {
	base := serverlessBase{httpClient: httpClient, baseURL: baseURL}

	return &ServerlessClient{
		services: &ServerlessServicesClient{
			serverlessBase: base,
			services:       newCollection[twilio.ServerlessService](httpClient, baseURL, "services", maxPages),
		},
		environments: &ServerlessEnvironmentsClient{
			serverlessBase: base,
			environments:   newCollection[twilio.ServerlessEnvironment](httpClient, baseURL, "environments", maxPages),
		},
		logs: &ServerlessLogsClient{
			serverlessBase: base,
			logs:           newCollection[twilio.ServerlessLog](httpClient, baseURL, "logs", maxPages),
		},
	}
}

// Services implements twilio.ServerlessClient.Services.
func (c *ServerlessClient) Services() twilio.ServerlessServicesClient { return c.services }

// Environments implements twilio.ServerlessClient.Environments.
func (c *ServerlessClient) Environments() twilio.ServerlessEnvironmentsClient { return c.environments }

// Logs implements twilio.ServerlessClient.Logs.
func (c *ServerlessClient) Logs() twilio.ServerlessLogsClient { return c.logs }

type serverlessBase struct {
	httpClient *internalhttp.Client
	baseURL    string
}

func (b serverlessBase) serviceURL(segments ...string) string {
	return internalhttp.JoinURL(b.baseURL, append([]string{"v1", "Services"}, segments...)...)
}

func (b serverlessBase) environmentURL(serviceSID string, segments ...string) string {
	return b.serviceURL(append([]string{serviceSID, "Environments"}, segments...)...)
}

// ServerlessServicesClient implements twilio.ServerlessServicesClient.
type ServerlessServicesClient struct {
	serverlessBase

	services collection[twilio.ServerlessService]
}

// Create implements twilio.ServerlessServicesClient.Create.
func (c *ServerlessServicesClient) Create(
	ctx context.Context, params *twilio.ServerlessServiceCreateParams,
) (*twilio.ServerlessService, error) {
	if params == nil || params.UniqueName == "" || params.FriendlyName == "" {
		return nil, twilio.NewValidationError("unique name and friendly name are required")
	}

	service, err := internalhttp.Send[twilio.ServerlessService](ctx, c.httpClient, &internalhttp.Request{
		Method: http.MethodPost,
		URL:    c.serviceURL(),
		Params: params,
	})
	if err != nil {
		return nil, fmt.Errorf("creating serverless service: %w", err)
	}

	return service, nil
}

// List implements twilio.ServerlessServicesClient.List.
func (c *ServerlessServicesClient) List(ctx context.Context) ([]twilio.ServerlessService, error) {
	services, err := c.services.list(ctx, c.serviceURL(), pageSizeParams(constants.ServicesPageSize))
	if err != nil {
		return nil, fmt.Errorf("listing serverless services: %w", err)
	}

	return services, nil
}

// Iterate implements twilio.ServerlessServicesClient.Iterate.
func (c *ServerlessServicesClient) Iterate(ctx context.Context) *twilio.PageIterator[twilio.ServerlessService] {
	return c.services.iterate(ctx, c.serviceURL(), pageSizeParams(constants.ServicesPageSize))
}

// Get implements twilio.ServerlessServicesClient.Get.
func (c *ServerlessServicesClient) Get(ctx context.Context, sid string) (*twilio.ServerlessService, error) {
	err := requireSIDs("service SID", sid)
	if err != nil {
		return nil, err
	}

	service, err := internalhttp.Send[twilio.ServerlessService](ctx, c.httpClient, &internalhttp.Request{
		Method: http.MethodGet,
		URL:    c.serviceURL(sid),
	})
	if err != nil {
		return nil, fmt.Errorf("getting serverless service: %w", err)
	}

	return service, nil
}

// Update implements twilio.ServerlessServicesClient.Update.
func (c *ServerlessServicesClient) Update(
	ctx context.Context, sid string, params *twilio.ServerlessServiceUpdateParams,
) (*twilio.ServerlessService, error) {
	err := requireSIDs("service SID", sid)
	if err != nil {
		return nil, err
	}

	service, err := internalhttp.Send[twilio.ServerlessService](ctx, c.httpClient, &internalhttp.Request{
		Method: http.MethodPost,
		URL:    c.serviceURL(sid),
		Params: params,
	})
	if err != nil {
		return nil, fmt.Errorf("updating serverless service: %w", err)
	}

	return service, nil
}

// Delete implements twilio.ServerlessServicesClient.Delete.
func (c *ServerlessServicesClient) Delete(ctx context.Context, sid string) error {
	err := requireSIDs("service SID", sid)
	if err != nil {
		return err
	}

	err = c.httpClient.Exec(ctx, &internalhttp.Request{
		Method: http.MethodDelete,
		URL:    c.serviceURL(sid),
	})
	if err != nil {
		return fmt.Errorf("deleting serverless service: %w", err)
	}

	return nil
}

// ServerlessEnvironmentsClient implements twilio.ServerlessEnvironmentsClient.
type ServerlessEnvironmentsClient struct {
	serverlessBase

	environments collection[twilio.ServerlessEnvironment]
}

// Create implements twilio.ServerlessEnvironmentsClient.Create.
func (c *ServerlessEnvironmentsClient) Create(
	ctx context.Context, serviceSID string, params *twilio.ServerlessEnvironmentCreateParams,
) (*twilio.ServerlessEnvironment, error) {
	err := requireSIDs("service SID", serviceSID)
	if err != nil {
		return nil, err
	}

	if params == nil || params.UniqueName == "" {
		return nil, twilio.NewValidationError("unique name is required")
	}

	environment, err := internalhttp.Send[twilio.ServerlessEnvironment](ctx, c.httpClient, &internalhttp.Request{
		Method: http.MethodPost,
		URL:    c.environmentURL(serviceSID),
		Params: params,
	})
	if err != nil {
		return nil, fmt.Errorf("creating serverless environment: %w", err)
	}

	return environment, nil
}

// List implements twilio.ServerlessEnvironmentsClient.List.
func (c *ServerlessEnvironmentsClient) List(ctx context.Context, serviceSID string) ([]twilio.ServerlessEnvironment, error) {
	err := requireSIDs("service SID", serviceSID)
	if err != nil {
		return nil, err
	}

	environments, err := c.environments.list(ctx, c.environmentURL(serviceSID), pageSizeParams(constants.StandardPageSize))
	if err != nil {
		return nil, fmt.Errorf("listing serverless environments: %w", err)
	}

	return environments, nil
}

// Iterate implements twilio.ServerlessEnvironmentsClient.Iterate.
func (c *ServerlessEnvironmentsClient) Iterate(
	ctx context.Context, serviceSID string,
) *twilio.PageIterator[twilio.ServerlessEnvironment] {
	err := requireSIDs("service SID", serviceSID)
	if err != nil {
		return failedIterator[twilio.ServerlessEnvironment](ctx, err)
	}

	return c.environments.iterate(ctx, c.environmentURL(serviceSID), pageSizeParams(constants.StandardPageSize))
}

// Get implements twilio.ServerlessEnvironmentsClient.Get.
func (c *ServerlessEnvironmentsClient) Get(ctx context.Context, serviceSID, sid string) (*twilio.ServerlessEnvironment, error) {
	err := requireSIDs("service SID", serviceSID, "environment SID", sid)
	if err != nil {
		return nil, err
	}

	environment, err := internalhttp.Send[twilio.ServerlessEnvironment](ctx, c.httpClient, &internalhttp.Request{
		Method: http.MethodGet,
		URL:    c.environmentURL(serviceSID, sid),
	})
	if err != nil {
		return nil, fmt.Errorf("getting serverless environment: %w", err)
	}

	return environment, nil
}

// Delete implements twilio.ServerlessEnvironmentsClient.Delete.
func (c *ServerlessEnvironmentsClient) Delete(ctx context.Context, serviceSID, sid string) error {
	err := requireSIDs("service SID", serviceSID, "environment SID", sid)
	if err != nil {
		return err
	}

	err = c.httpClient.Exec(ctx, &internalhttp.Request{
		Method: http.MethodDelete,
		URL:    c.environmentURL(serviceSID, sid),
	})
	if err != nil {
		return fmt.Errorf("deleting serverless environment: %w", err)
	}

	return nil
}

// ServerlessLogsClient implements twilio.ServerlessLogsClient.
type ServerlessLogsClient struct {
	serverlessBase

	logs collection[twilio.ServerlessLog]
}

func (c *ServerlessLogsClient) logsURL(serviceSID, environmentSID string, segments ...string) string {
	return c.environmentURL(serviceSID, append([]string{environmentSID, "Logs"}, segments...)...)
}

// List implements twilio.ServerlessLogsClient.List.
func (c *ServerlessLogsClient) List(
	ctx context.Context, serviceSID, environmentSID string, params *twilio.ServerlessLogListParams,
) ([]twilio.ServerlessLog, error) {
	query, err := logListParams(serviceSID, environmentSID, params)
	if err != nil {
		return nil, err
	}

	logs, err := c.logs.list(ctx, c.logsURL(serviceSID, environmentSID), query)
	if err != nil {
		return nil, fmt.Errorf("listing serverless logs: %w", err)
	}

	return logs, nil
}

// Iterate implements twilio.ServerlessLogsClient.Iterate.
func (c *ServerlessLogsClient) Iterate(
	ctx context.Context, serviceSID, environmentSID string, params *twilio.ServerlessLogListParams,
) *twilio.PageIterator[twilio.ServerlessLog] {
	query, err := logListParams(serviceSID, environmentSID, params)
	if err != nil {
		return failedIterator[twilio.ServerlessLog](ctx, err)
	}

	return c.logs.iterate(ctx, c.logsURL(serviceSID, environmentSID), query)
}

// Get implements twilio.ServerlessLogsClient.Get.
func (c *ServerlessLogsClient) Get(ctx context.Context, serviceSID, environmentSID, sid string) (*twilio.ServerlessLog, error) {
	err := requireSIDs("service SID", serviceSID, "environment SID", environmentSID, "log SID", sid)
	if err != nil {
		return nil, err
	}

	log, err := internalhttp.Send[twilio.ServerlessLog](ctx, c.httpClient, &internalhttp.Request{
		Method: http.MethodGet,
		URL:    c.logsURL(serviceSID, environmentSID, sid),
	})
	if err != nil {
		return nil, fmt.Errorf("getting serverless log: %w", err)
	}

	return log, nil
}

// logListParams validates a log query and normalizes its times to UTC.
func logListParams(serviceSID, environmentSID string, params *twilio.ServerlessLogListParams) (*twilio.ServerlessLogListParams, error) {
	err := requireSIDs("service SID", serviceSID, "environment SID", environmentSID)
	if err != nil {
		return nil, err
	}

	err = params.Validate()
	if err != nil {
		return nil, err
	}

	query := twilio.ServerlessLogListParams{}
	if params != nil {
		query = *params
	}

	if query.StartDate != nil {
		start := query.StartDate.UTC()
		query.StartDate = &start
	}

	if query.EndDate != nil {
		end := query.EndDate.UTC()
		query.EndDate = &end
	}

	if query.PageSize == 0 {
		query.PageSize = constants.LogsPageSize
	}

	return &query, nil
}
