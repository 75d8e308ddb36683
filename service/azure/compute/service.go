package azurecompute

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v5"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v5"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/reservations/armreservations"
	"github.com/samber/lo"
	"github.com/saral-digital/ops-dashboard/model"
	"golang.org/x/sync/errgroup"
)

func NewService(subscriptionID string, credential Credential) (*service, error) {
	disksClient, err := armcompute.NewDisksClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create disks client: %w", err)
	}

	vmClient, err := armcompute.NewVirtualMachinesClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create VM client: %w", err)
	}

	publicIPClient, err := armnetwork.NewPublicIPAddressesClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create public IP client: %w", err)
	}

	reservationsClient, err := armreservations.NewReservationOrderClient(credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create reservations client: %w", err)
	}

	return &service{
		disksClient:        disksClient,
		vmClient:           vmClient,
		publicIPClient:     publicIPClient,
		reservationsClient: reservationsClient,
		now:                time.Now,
	}, nil
}

// GetWasteReport lists disks, VMs, IPs and reservations concurrently
func (s *service) GetWasteReport(ctx context.Context) (*model.WasteReport, error) {
	report := &model.WasteReport{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		disks, err := s.GetUnattachedDisks(ctx)
		report.UnusedVolumes = disks
		return err
	})
	g.Go(func() error {
		vms, attached, err := s.GetDeallocatedVMs(ctx)
		report.StoppedInstances, report.AttachedVolumes = vms, attached
		return err
	})
	g.Go(func() error {
		ips, err := s.GetUnassociatedPublicIPs(ctx)
		report.UnusedIPs = ips
		return err
	})
	g.Go(func() error {
		reservations, err := s.GetExpiringReservations(ctx)
		report.ExpiringReservations = reservations
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}

// GetUnattachedDisks returns managed disks that are not attached to any VM
func (s *service) GetUnattachedDisks(ctx context.Context) ([]model.UnusedVolume, error) {
	result := []model.UnusedVolume{}

	pager := s.disksClient.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list disks: %w", err)
		}

		for _, disk := range page.Value {
			if volume, ok := unattachedDisk(disk); ok {
				result = append(result, volume)
			}
		}
	}

	return result, nil
}

// GetDeallocatedVMs returns deallocated VMs and the disks still attached to them.
// Power state comes from the status-only listing so no per-VM call is needed.
func (s *service) GetDeallocatedVMs(ctx context.Context) ([]model.StoppedInstance, []model.UnusedVolume, error) {
	stopped := []model.StoppedInstance{}
	attached := []model.UnusedVolume{}

	pager := s.vmClient.NewListAllPager(&armcompute.VirtualMachinesClientListAllOptions{
		StatusOnly: to.Ptr("true"),
	})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list VMs: %w", err)
		}

		for _, vm := range page.Value {
			if !isDeallocated(vm) {
				continue
			}
			name := lo.FromPtrOr(vm.Name, "")
			stopped = append(stopped, model.StoppedInstance{ID: lo.FromPtrOr(vm.ID, name), Name: name})
			attached = append(attached, attachedDisks(vm)...)
		}
	}

	return stopped, attached, nil
}

// GetUnassociatedPublicIPs returns public IPs without an IP configuration
func (s *service) GetUnassociatedPublicIPs(ctx context.Context) ([]model.UnusedIP, error) {
	result := []model.UnusedIP{}

	pager := s.publicIPClient.NewListAllPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list public IPs: %w", err)
		}

		for _, ip := range page.Value {
			if ip.Properties == nil || ip.Properties.IPConfiguration != nil {
				continue
			}
			result = append(result, model.UnusedIP{
				Address: lo.FromPtrOr(ip.Properties.IPAddress, ""),
				Name:    lo.FromPtrOr(ip.Name, ""),
			})
		}
	}

	return result, nil
}

// GetExpiringReservations returns reservation orders expiring within 30 days
// or expired during the last 30. Missing reservation permissions yield an
// empty list.
func (s *service) GetExpiringReservations(ctx context.Context) ([]model.Reservation, error) {
	result := []model.Reservation{}
	now := s.now()

	pager := s.reservationsClient.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return result, nil
		}

		for _, order := range page.Value {
			if reservation, ok := reservationStatus(order, now); ok {
				result = append(result, reservation)
			}
		}
	}

	return result, nil
}

func unattachedDisk(disk *armcompute.Disk) (model.UnusedVolume, bool) {
	if disk == nil || disk.Properties == nil || disk.Properties.DiskState == nil {
		return model.UnusedVolume{}, false
	}
	if *disk.Properties.DiskState != armcompute.DiskStateUnattached {
		return model.UnusedVolume{}, false
	}
	return model.UnusedVolume{
		ID:     lo.FromPtrOr(disk.Name, ""),
		SizeGB: lo.FromPtrOr(disk.Properties.DiskSizeGB, 0),
		Status: "available",
	}, true
}

func isDeallocated(vm *armcompute.VirtualMachine) bool {
	if vm == nil || vm.Properties == nil || vm.Properties.InstanceView == nil {
		return false
	}
	for _, status := range vm.Properties.InstanceView.Statuses {
		if status != nil && status.Code != nil && strings.HasPrefix(*status.Code, "PowerState/deallocated") {
			return true
		}
	}
	return false
}

func attachedDisks(vm *armcompute.VirtualMachine) []model.UnusedVolume {
	if vm.Properties == nil || vm.Properties.StorageProfile == nil {
		return nil
	}
	profile := vm.Properties.StorageProfile

	var volumes []model.UnusedVolume
	if os := profile.OSDisk; os != nil && os.ManagedDisk != nil && os.ManagedDisk.ID != nil {
		volumes = append(volumes, model.UnusedVolume{
			ID:     resourceName(*os.ManagedDisk.ID),
			SizeGB: lo.FromPtrOr(os.DiskSizeGB, 0),
			Status: "attached_stopped",
		})
	}
	for _, data := range profile.DataDisks {
		if data == nil || data.ManagedDisk == nil || data.ManagedDisk.ID == nil {
			continue
		}
		volumes = append(volumes, model.UnusedVolume{
			ID:     resourceName(*data.ManagedDisk.ID),
			SizeGB: lo.FromPtrOr(data.DiskSizeGB, 0),
			Status: "attached_stopped",
		})
	}
	return volumes
}

func reservationStatus(order *armreservations.ReservationOrderResponse, now time.Time) (model.Reservation, bool) {
	if order == nil || order.Properties == nil || order.Properties.ExpiryDate == nil {
		return model.Reservation{}, false
	}

	expiry := *order.Properties.ExpiryDate
	reservation := model.Reservation{
		ID:              lo.FromPtrOr(order.Name, ""),
		DisplayName:     lo.FromPtrOr(order.Properties.DisplayName, ""),
		DaysUntilExpiry: int(expiry.Sub(now).Hours() / 24),
	}

	switch {
	case expiry.After(now) && expiry.Before(now.Add(reservationWindow)):
		state := order.Properties.ProvisioningState
		if state == nil || *state != armreservations.ProvisioningStateSucceeded {
			return model.Reservation{}, false
		}
		reservation.Status = "expiring"
	case expiry.Before(now) && expiry.After(now.Add(-reservationWindow)):
		reservation.Status = "expired"
	default:
		return model.Reservation{}, false
	}
	return reservation, true
}

// resourceName returns the last segment of an Azure resource ID
func resourceName(resourceID string) string {
	parts := strings.Split(resourceID, "/")
	return parts[len(parts)-1]
}
