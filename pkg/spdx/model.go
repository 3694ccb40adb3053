package spdx

// Identifiers with special meaning in relationship targets.
const (
	NoAssertion = "NOASSERTION"
	None        = "NONE"
)

// Document is one SPDX document.
type Document struct {
	SPDXVersion string `json:"spdxVersion" yaml:"spdxVersion"`
	DataLicense string `json:"dataLicense,omitempty" yaml:"dataLicense,omitempty"`
	ID          string `json:"SPDXID" yaml:"SPDXID"`
	Name        string `json:"name" yaml:"name"`
	Namespace   string `json:"documentNamespace" yaml:"documentNamespace"`
	Comment     string `json:"comment,omitempty" yaml:"comment,omitempty"`

	CreationInfo CreationInfo `json:"creationInfo" yaml:"creationInfo"`

	ExternalDocumentRefs []ExternalDocumentRef `json:"externalDocumentRefs,omitempty" yaml:"externalDocumentRefs,omitempty"`
	ExtractedLicenses    []ExtractedLicense    `json:"hasExtractedLicensingInfos,omitempty" yaml:"hasExtractedLicensingInfos,omitempty"`
	Annotations          []Annotation          `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Packages             []Package             `json:"packages,omitempty" yaml:"packages,omitempty"`
	Files                []File                `json:"files,omitempty" yaml:"files,omitempty"`
	Relationships        []Relationship        `json:"relationships,omitempty" yaml:"relationships,omitempty"`
}

// CreationInfo records who created a document and when.
type CreationInfo struct {
	Created            string   `json:"created" yaml:"created"`
	Creators           []string `json:"creators" yaml:"creators"`
	LicenseListVersion string   `json:"licenseListVersion,omitempty" yaml:"licenseListVersion,omitempty"`
	Comment            string   `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// Checksum is an algorithm/value pair such as SHA256/ab12...
type Checksum struct {
	Algorithm string `json:"algorithm" yaml:"algorithm"`
	Value     string `json:"checksumValue" yaml:"checksumValue"`
}

// Annotation is a comment attached to a document or element.
type Annotation struct {
	Annotator string `json:"annotator" yaml:"annotator"`
	Date      string `json:"annotationDate" yaml:"annotationDate"`
	Type      string `json:"annotationType" yaml:"annotationType"`
	Comment   string `json:"comment" yaml:"comment"`
}

// File describes one file of the described software. Name is a pointer so
// that a file without a name stays distinguishable from an empty name.
type File struct {
	ID                 string       `json:"SPDXID" yaml:"SPDXID"`
	Name               *string      `json:"fileName,omitempty" yaml:"fileName,omitempty"`
	Checksums          []Checksum   `json:"checksums,omitempty" yaml:"checksums,omitempty"`
	FileTypes          []string     `json:"fileTypes,omitempty" yaml:"fileTypes,omitempty"`
	LicenseConcluded   string       `json:"licenseConcluded,omitempty" yaml:"licenseConcluded,omitempty"`
	LicenseInfoInFiles []string     `json:"licenseInfoInFiles,omitempty" yaml:"licenseInfoInFiles,omitempty"`
	Copyright          string       `json:"copyrightText,omitempty" yaml:"copyrightText,omitempty"`
	Comment            string       `json:"comment,omitempty" yaml:"comment,omitempty"`
	Notice             string       `json:"noticeText,omitempty" yaml:"noticeText,omitempty"`
	Contributors       []string     `json:"fileContributors,omitempty" yaml:"fileContributors,omitempty"`
	Annotations        []Annotation `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

// FileName returns the file name, or "" when the file has none.
func (f File) FileName() string {
	if f.Name == nil {
		return ""
	}
	return *f.Name
}

// Package describes one package. Packages are modeled so relationship
// targets can be resolved; they are not a comparison category of their own.
type Package struct {
	ID               string     `json:"SPDXID" yaml:"SPDXID"`
	Name             string     `json:"name" yaml:"name"`
	Version          string     `json:"versionInfo,omitempty" yaml:"versionInfo,omitempty"`
	Supplier         string     `json:"supplier,omitempty" yaml:"supplier,omitempty"`
	DownloadLocation string     `json:"downloadLocation,omitempty" yaml:"downloadLocation,omitempty"`
	Checksums        []Checksum `json:"checksums,omitempty" yaml:"checksums,omitempty"`
}

// Relationship links a source element to a related element.
type Relationship struct {
	Element string `json:"spdxElementId" yaml:"spdxElementId"`
	Type    string `json:"relationshipType" yaml:"relationshipType"`
	Related string `json:"relatedSpdxElement" yaml:"relatedSpdxElement"`
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// ExternalDocumentRef points at another SPDX document.
type ExternalDocumentRef struct {
	ID        string    `json:"externalDocumentId" yaml:"externalDocumentId"`
	Namespace string    `json:"spdxDocument" yaml:"spdxDocument"`
	Checksum  *Checksum `json:"checksum,omitempty" yaml:"checksum,omitempty"`
}

// ExtractedLicense is a license not on the SPDX license list, carried with
// its full text.
type ExtractedLicense struct {
	ID      string   `json:"licenseId" yaml:"licenseId"`
	Text    *string  `json:"extractedText,omitempty" yaml:"extractedText,omitempty"`
	Name    string   `json:"name,omitempty" yaml:"name,omitempty"`
	SeeAlso []string `json:"seeAlsos,omitempty" yaml:"seeAlsos,omitempty"`
	Comment string   `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// ExtractedText returns the license text, or "" when absent.
func (l ExtractedLicense) ExtractedText() string {
	if l.Text == nil {
		return ""
	}
	return *l.Text
}
