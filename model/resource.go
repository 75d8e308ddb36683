package model

// AccountInfo represents the monitored Azure subscription
type AccountInfo struct {
	Provider    string `json:"provider"`
	AccountID   string `json:"accountId"`
	AccountName string `json:"accountName"`
}

// Subscription is a subscription visible to the current credential
type Subscription struct {
	SubscriptionID string `json:"subscriptionId"`
	DisplayName    string `json:"displayName"`
	State          string `json:"state"`
}

// ResourceGroup is a resource group with its tags
type ResourceGroup struct {
	Name string
	Tags map[string]string
}

// Resource is one entry of the subscription inventory
type Resource struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Type          string            `json:"type"`
	FullType      string            `json:"fullType"`
	Location      string            `json:"location"`
	ResourceGroup string            `json:"resourceGroup"`
	Tags          map[string]string `json:"tags"`
}

// ResourceInventory is the sorted list of all resources
type ResourceInventory struct {
	Total     int        `json:"total"`
	Resources []Resource `json:"resources"`
}

// UnusedVolume represents an unused managed disk
type UnusedVolume struct {
	ID     string `json:"id"`
	SizeGB int32  `json:"sizeGb"`
	Status string `json:"status"` // "available", "attached_stopped"
}

// StoppedInstance represents a deallocated virtual machine
type StoppedInstance struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UnusedIP represents an unassociated public IP address
type UnusedIP struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

// Reservation represents a reservation order close to or past expiry
type Reservation struct {
	ID              string `json:"id"`
	DisplayName     string `json:"displayName"`
	Status          string `json:"status"` // "expiring", "expired"
	DaysUntilExpiry int    `json:"daysUntilExpiry"`
}

// WasteReport aggregates idle resources that still incur cost
type WasteReport struct {
	UnusedVolumes        []UnusedVolume    `json:"unusedVolumes"`
	AttachedVolumes      []UnusedVolume    `json:"volumesAttachedToStoppedInstances"`
	UnusedIPs            []UnusedIP        `json:"unusedIps"`
	StoppedInstances     []StoppedInstance `json:"stoppedInstances"`
	ExpiringReservations []Reservation     `json:"expiringReservations"`
}
