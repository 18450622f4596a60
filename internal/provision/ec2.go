package provision

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/service/ec2"

	"helheim/internal/domain"
)

// EC2Controller implements domain.ComputeController against EC2. Termination
// is graceful (no force), and both calls are idempotent no-ops on targets
// that are already gone.
type EC2Controller struct {
	client *ec2.Client
	logger *slog.Logger
}

// NewEC2Controller creates a controller using the given EC2 client.
func NewEC2Controller(client *ec2.Client, logger *slog.Logger) *EC2Controller {
	return &EC2Controller{client: client, logger: logger}
}

// TerminateInstance requests graceful termination of the instance.
func (c *EC2Controller) TerminateInstance(ctx context.Context, instanceID string) error {
	c.logger.Info("terminating instance", "instance", instanceID)
	_, err := c.client.TerminateInstances(ctx, &ec2.TerminateInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		return domain.ErrBackend(err, "terminate instance %s", instanceID)
	}
	return nil
}

// CancelSpotRequest cancels the spot instance request that provisioned the
// instance.
func (c *EC2Controller) CancelSpotRequest(ctx context.Context, spotRequestID string) error {
	c.logger.Info("cancelling spot request", "spot_request", spotRequestID)
	_, err := c.client.CancelSpotInstanceRequests(ctx, &ec2.CancelSpotInstanceRequestsInput{
		SpotInstanceRequestIds: []string{spotRequestID},
	})
	if err != nil {
		return domain.ErrBackend(err, "cancel spot request %s", spotRequestID)
	}
	return nil
}
