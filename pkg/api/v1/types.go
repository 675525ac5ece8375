package v1

import metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

type OutputFormat string

const (
	OutputText    OutputFormat = "text"
	OutputJSON    OutputFormat = "json"
	OutputControl OutputFormat = "control"
)

type OrderSpec struct {
	OS         string       `json:"os,omitempty"`
	Distro     string       `json:"distro,omitempty"`
	Repository Repository   `json:"repository,omitempty"`
	Index      string       `json:"index,omitempty"`
	Output     OutputFormat `json:"output,omitempty"`
}

type Repository struct {
	URL       string `json:"url,omitempty"`
	Component string `json:"component,omitempty"`
	Arch      string `json:"arch,omitempty"`
}

type Order struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec OrderSpec `json:"spec"`
}
