package azurecompute

import (
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v5"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/reservations/armreservations"
	"github.com/saral-digital/ops-dashboard/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnattachedDisk(t *testing.T) {
	volume, ok := unattachedDisk(&armcompute.Disk{
		Name: to.Ptr("disk-1"),
		Properties: &armcompute.DiskProperties{
			DiskState:  to.Ptr(armcompute.DiskStateUnattached),
			DiskSizeGB: to.Ptr[int32](128),
		},
	})
	require.True(t, ok)
	assert.Equal(t, model.UnusedVolume{ID: "disk-1", SizeGB: 128, Status: "available"}, volume)

	_, ok = unattachedDisk(&armcompute.Disk{
		Name:       to.Ptr("disk-2"),
		Properties: &armcompute.DiskProperties{DiskState: to.Ptr(armcompute.DiskStateAttached)},
	})
	assert.False(t, ok)

	_, ok = unattachedDisk(&armcompute.Disk{Name: to.Ptr("disk-3")})
	assert.False(t, ok)
}

func TestDeallocatedVMDisks(t *testing.T) {
	vm := &armcompute.VirtualMachine{
		Name: to.Ptr("vm-1"),
		Properties: &armcompute.VirtualMachineProperties{
			InstanceView: &armcompute.VirtualMachineInstanceView{
				Statuses: []*armcompute.InstanceViewStatus{
					{Code: to.Ptr("ProvisioningState/succeeded")},
					{Code: to.Ptr("PowerState/deallocated")},
				},
			},
			StorageProfile: &armcompute.StorageProfile{
				OSDisk: &armcompute.OSDisk{
					DiskSizeGB:  to.Ptr[int32](30),
					ManagedDisk: &armcompute.ManagedDiskParameters{ID: to.Ptr("/subscriptions/s/resourceGroups/rg/providers/Microsoft.Compute/disks/os-disk")},
				},
				DataDisks: []*armcompute.DataDisk{
					{DiskSizeGB: to.Ptr[int32](256), ManagedDisk: &armcompute.ManagedDiskParameters{ID: to.Ptr("/x/disks/data-disk")}},
					{DiskSizeGB: to.Ptr[int32](8)},
				},
			},
		},
	}

	assert.True(t, isDeallocated(vm))
	assert.Equal(t, []model.UnusedVolume{
		{ID: "os-disk", SizeGB: 30, Status: "attached_stopped"},
		{ID: "data-disk", SizeGB: 256, Status: "attached_stopped"},
	}, attachedDisks(vm))

	running := &armcompute.VirtualMachine{
		Properties: &armcompute.VirtualMachineProperties{
			InstanceView: &armcompute.VirtualMachineInstanceView{
				Statuses: []*armcompute.InstanceViewStatus{{Code: to.Ptr("PowerState/running")}},
			},
		},
	}
	assert.False(t, isDeallocated(running))
	assert.False(t, isDeallocated(&armcompute.VirtualMachine{}))
}

func TestReservationStatus(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	order := func(expiry time.Time, state armreservations.ProvisioningState) *armreservations.ReservationOrderResponse {
		return &armreservations.ReservationOrderResponse{
			Name: to.Ptr("order-1"),
			Properties: &armreservations.ReservationOrderProperties{
				DisplayName:       to.Ptr("VM reservation"),
				ExpiryDate:        to.Ptr(expiry),
				ProvisioningState: to.Ptr(state),
			},
		}
	}

	reservation, ok := reservationStatus(order(now.AddDate(0, 0, 10), armreservations.ProvisioningStateSucceeded), now)
	require.True(t, ok)
	assert.Equal(t, model.Reservation{ID: "order-1", DisplayName: "VM reservation", Status: "expiring", DaysUntilExpiry: 10}, reservation)

	reservation, ok = reservationStatus(order(now.AddDate(0, 0, -5), armreservations.ProvisioningStateSucceeded), now)
	require.True(t, ok)
	assert.Equal(t, "expired", reservation.Status)
	assert.Equal(t, -5, reservation.DaysUntilExpiry)

	_, ok = reservationStatus(order(now.AddDate(0, 0, 10), armreservations.ProvisioningStateFailed), now)
	assert.False(t, ok)

	_, ok = reservationStatus(order(now.AddDate(0, 3, 0), armreservations.ProvisioningStateSucceeded), now)
	assert.False(t, ok)

	_, ok = reservationStatus(&armreservations.ReservationOrderResponse{}, now)
	assert.False(t, ok)
}
