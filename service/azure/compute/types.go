package azurecompute

import (
	"context"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v5"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v5"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/reservations/armreservations"
	"github.com/saral-digital/ops-dashboard/model"
)

type service struct {
	disksClient        *armcompute.DisksClient
	vmClient           *armcompute.VirtualMachinesClient
	publicIPClient     *armnetwork.PublicIPAddressesClient
	reservationsClient *armreservations.ReservationOrderClient
	now                func() time.Time
}

type ComputeService interface {
	// GetWasteReport collects every idle-resource finding for the subscription
	GetWasteReport(ctx context.Context) (*model.WasteReport, error)

	GetUnattachedDisks(ctx context.Context) ([]model.UnusedVolume, error)
	GetDeallocatedVMs(ctx context.Context) ([]model.StoppedInstance, []model.UnusedVolume, error)
	GetUnassociatedPublicIPs(ctx context.Context) ([]model.UnusedIP, error)
	GetExpiringReservations(ctx context.Context) ([]model.Reservation, error)
}

// Credential is passed to allow reuse across services
type Credential = azcore.TokenCredential

const reservationWindow = 30 * 24 * time.Hour
