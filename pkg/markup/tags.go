package markup

import "github.com/dmitrymomot/mailforge/pkg/document"

// Intermediate markup tags.
const (
	TagMJML       = "mjml"
	TagHead       = "mj-head"
	TagTitle      = "mj-title"
	TagPreview    = "mj-preview"
	TagAttributes = "mj-attributes"
	TagAll        = "mj-all"
	TagStyle      = "mj-style"
	TagBody       = "mj-body"
	TagSection    = "mj-section"
	TagColumn     = "mj-column"
	TagText       = "mj-text"
	TagButton     = "mj-button"
	TagImage      = "mj-image"
	TagSpacer     = "mj-spacer"
	TagDivider    = "mj-divider"
)

const (
	attrAlign               = "align"
	attrPadding             = "padding"
	attrHref                = "href"
	attrTarget              = "target"
	attrSrc                 = "src"
	attrAlt                 = "alt"
	attrWidth               = "width"
	attrHeight              = "height"
	attrFluidOnMobile       = "fluid-on-mobile"
	attrBackground          = "background-color"
	attrContainerBackground = "container-background-color"
	attrBorderWidth         = "border-width"
	attrBorderColor         = "border-color"
	attrBorderStyle         = "border-style"
	attrBorderRadius        = "border-radius"
	attrFontSize            = "font-size"
	attrFontWeight          = "font-weight"
	attrLineHeight          = "line-height"
	attrLetterSpacing       = "letter-spacing"
	attrFontFamily          = "font-family"
	attrColor               = "color"
	attrTitle               = "title"
)

// leafTags maps non-structural block types onto their output tag.
// SocialIcons is rendered by hand and is intentionally absent.
var leafTags = map[document.BlockType]string{
	document.TypeText:    TagText,
	document.TypeHeading: TagText,
	document.TypeList:    TagText,
	document.TypeQuote:   TagText,
	document.TypeButton:  TagButton,
	document.TypeImage:   TagImage,
	document.TypeSpacer:  TagSpacer,
	document.TypeDivider: TagDivider,
}

// TagFor returns the output tag of a leaf block type.
func TagFor(t document.BlockType) (string, bool) {
	tag, ok := leafTags[t]
	return tag, ok
}

// element renders <tag attrs>inner</tag>, or a self-closing tag when inner is empty.
func element(tag string, attrs Attrs, inner string) string {
	if inner == "" {
		return "<" + tag + attrs.String() + " />"
	}
	return "<" + tag + attrs.String() + ">" + inner + "</" + tag + ">"
}

// shell renders <tag attrs>inner</tag> even when inner is empty.
func shell(tag string, attrs Attrs, inner string) string {
	return "<" + tag + attrs.String() + ">" + inner + "</" + tag + ">"
}
