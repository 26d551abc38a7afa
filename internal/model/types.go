package model

import "strconv"

// Downtime is one scheduled-maintenance entry from a retention file.
// Values are kept as the raw strings found in the block body; Extras
// holds keys the tool does not know about.
type Downtime struct {
	Type               string            `json:"downtime_type"`
	ID                 string            `json:"downtime_id,omitempty"`
	EntryTime          string            `json:"entry_time,omitempty"`
	StartTime          string            `json:"start_time,omitempty"`
	EndTime            string            `json:"end_time,omitempty"`
	IsInEffect         string            `json:"is_in_effect,omitempty"`
	HostName           string            `json:"host_name,omitempty"`
	ServiceDescription string            `json:"service_description,omitempty"`
	Author             string            `json:"author,omitempty"`
	Comment            string            `json:"comment,omitempty"`
	EntryTimeNice      string            `json:"entry_time_nice,omitempty"`
	StartTimeNice      string            `json:"start_time_nice,omitempty"`
	EndTimeNice        string            `json:"end_time_nice,omitempty"`
	Extras             map[string]string `json:"extras,omitempty"`
}

func (d *Downtime) Set(key, value string) {
	switch key {
	case "downtime_type":
		d.Type = value
	case "downtime_id":
		d.ID = value
	case "entry_time":
		d.EntryTime = value
	case "start_time":
		d.StartTime = value
	case "end_time":
		d.EndTime = value
	case "is_in_effect":
		d.IsInEffect = value
	case "host_name":
		d.HostName = value
	case "service_description":
		d.ServiceDescription = value
	case "author":
		d.Author = value
	case "comment":
		d.Comment = value
	case "entry_time_nice":
		d.EntryTimeNice = value
	case "start_time_nice":
		d.StartTimeNice = value
	case "end_time_nice":
		d.EndTimeNice = value
	default:
		if d.Extras == nil {
			d.Extras = map[string]string{}
		}
		d.Extras[key] = value
	}
}

// Get is the projection surface the report formatter selects columns
// through. Unknown keys fall back to Extras.
func (d *Downtime) Get(key string) (string, bool) {
	switch key {
	case "downtime_type":
		return d.Type, d.Type != ""
	case "downtime_id":
		return d.ID, d.ID != ""
	case "entry_time":
		return d.EntryTime, d.EntryTime != ""
	case "start_time":
		return d.StartTime, d.StartTime != ""
	case "end_time":
		return d.EndTime, d.EndTime != ""
	case "is_in_effect":
		return d.IsInEffect, d.IsInEffect != ""
	case "host_name":
		return d.HostName, d.HostName != ""
	case "service_description":
		return d.ServiceDescription, d.ServiceDescription != ""
	case "author":
		return d.Author, d.Author != ""
	case "comment":
		return d.Comment, d.Comment != ""
	case "entry_time_nice":
		return d.EntryTimeNice, d.EntryTimeNice != ""
	case "start_time_nice":
		return d.StartTimeNice, d.StartTimeNice != ""
	case "end_time_nice":
		return d.EndTimeNice, d.EndTimeNice != ""
	}
	v, ok := d.Extras[key]
	return v, ok
}

// EndEpoch parses end_time as Unix seconds.
func (d *Downtime) EndEpoch() (int64, bool) {
	sec, err := strconv.ParseInt(d.EndTime, 10, 64)
	if err != nil {
		return 0, false
	}
	return sec, true
}
