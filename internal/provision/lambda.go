// Package provision holds the clients for the external provisioning and
// compute-termination backends.
package provision

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"

	"helheim/internal/domain"
)

// LambdaProvisioner implements domain.Provisioner by synchronously invoking
// the instance lambda. The call blocks for the backend's response; no retry
// is attempted here.
type LambdaProvisioner struct {
	client       *lambda.Client
	functionName string
	logger       *slog.Logger
}

// NewLambdaProvisioner creates a provisioner invoking functionName.
func NewLambdaProvisioner(client *lambda.Client, functionName string, logger *slog.Logger) *LambdaProvisioner {
	return &LambdaProvisioner{client: client, functionName: functionName, logger: logger}
}

// Provision dispatches the launch request and decodes the backend's response.
func (p *LambdaProvisioner) Provision(ctx context.Context, req domain.ProvisionRequest) (*domain.ProvisionResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, domain.ErrBackend(err, "encode provisioning request")
	}

	p.logger.Info("invoking provisioning backend",
		"function", p.functionName, "realm", req.RealmGUID, "world", req.WorldName)

	out, err := p.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(p.functionName),
		InvocationType: types.InvocationTypeRequestResponse,
		Payload:        payload,
	})
	if err != nil {
		return nil, domain.ErrBackend(err, "provisioning backend call failed")
	}
	if out.FunctionError != nil {
		return nil, domain.ErrBackend(nil, "provisioning backend reported error: %s", aws.ToString(out.FunctionError))
	}

	var result domain.ProvisionResult
	if err := json.Unmarshal(out.Payload, &result); err != nil {
		return nil, domain.ErrBackend(err, "decode provisioning response")
	}
	if result.InstanceID == "" || result.SpotRequestID == "" {
		return nil, domain.ErrBackend(nil, "provisioning response missing instance or spot request id")
	}

	p.logger.Info("provisioning backend returned instance",
		"instance", result.InstanceID, "spot_request", result.SpotRequestID, "status", result.Status)
	return &result, nil
}
